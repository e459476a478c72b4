package ocr

import "context"

// ImageFormat identifies the content type of an OCR input image.
type ImageFormat string

const (
	ImageFormatPNG  ImageFormat = "image/png"
	ImageFormatJPEG ImageFormat = "image/jpeg"
)

// DefaultPrompt is sent to vision models with every image.
const DefaultPrompt = "You are an OCR engine. " +
	"Extract ALL text EXACTLY as it appears. " +
	"Preserve spelling, punctuation, symbols and line breaks. " +
	"Do NOT translate or paraphrase."

// Input encapsulates a single image submitted for OCR.
type Input struct {
	// Image is the encoded image payload in the format specified by Format.
	Image []byte
	// Format declares the image content type.
	Format ImageFormat
	// Languages are tesseract traineddata names ("eng", "hin", ...). Vision
	// models ignore them.
	Languages []string
	// Prompt overrides DefaultPrompt for vision models.
	Prompt string
}

// Result is the raw text an engine read from an image. Line breaks are kept.
type Result struct {
	Text   string
	Engine string
}

// Engine turns an image into text.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, in Input) (Result, error)
}
