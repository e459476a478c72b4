// Package tesseract registers a local Tesseract OCR engine under the name
// "tesseract". The engine links against libtesseract through cgo and is only
// compiled with the "tesseract" build tag:
//
//	go build -tags tesseract .
//
// Without the tag, importing the package registers nothing.
package tesseract
