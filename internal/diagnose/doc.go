// Package diagnose implements the OCR diagnostic run: it checks that the
// Tesseract engine is reachable, then extracts the text of one image and
// reports the result on the console.
//
// Every failure is turned into a report line where it happens. Nothing in
// this package returns an error to its caller; CheckEngineAvailable and
// ExtractText signal failure through their boolean results, and Run
// summarizes the whole sequence as an Outcome.
package diagnose
