// Package ocr runs the Tesseract OCR engine on decoded images.
//
// Two backends implement the Engine interface:
//
//   - Tesseract (default): executes the tesseract command, piping a PNG to
//     its stdin and reading the recognized text from stdout. The executable
//     is looked up on every call, so the engine can be installed while the
//     program is running.
//   - Library: links libtesseract through gosseract/v2. It is only compiled
//     with the "gosseract" build tag because it needs cgo and the Tesseract
//     and Leptonica headers.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr
//   - macOS: brew install tesseract
//   - Windows: Download from https://github.com/UB-Mannheim/tesseract/wiki
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-por (for Portuguese)
//   - Other languages: tesseract-ocr-<lang> packages
//
// If tesseract is not on PATH, point the engine at it explicitly through
// config.Engine.Command.
//
// # Languages
//
// The default language is Portuguese ("por"), which matches the supermarket
// flyers this tool was written for. Any Tesseract language code is passed
// through unchanged:
//   - "por" - Portuguese
//   - "eng" - English
//   - "por+eng" - both packs at once
//
// Language codes are not validated here; a missing pack is reported by the
// engine itself when Recognize runs.
//
// # Error Handling
//
// Every Engine method returns an *Error carrying a Kind:
//
//   - KindEngineNotFound: the executable could not be located
//   - KindQuery: the engine ran but its version could not be read
//   - KindProcessing: the engine rejected the job (missing language pack,
//     unreadable input)
//   - KindUnexpected: anything else, including cancellation and timeouts
//
// Use KindOf or errors.Is with the Err* sentinels to branch on them.
package ocr
