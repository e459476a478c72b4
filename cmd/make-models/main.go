package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/EasterCompany/dex-lipi-service/config"
	"github.com/EasterCompany/dex-lipi-service/ocr"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
)

// OCRModelName is the tuned model created from the configured base model.
const OCRModelName = "lipi-ocr"

func main() {
	fmt.Printf("%s--- Lipi Model Maker ---%s\n", ColorBlue, ColorReset)

	svc, err := config.LoadService()
	if err != nil {
		fmt.Printf("%s[FATAL]%s Failed to load %s: %v\n", ColorRed, ColorReset, config.ServiceFile, err)
		os.Exit(1)
	}
	if svc.OCR.Engine != "vlm" {
		fmt.Printf("%s[WARN]%s ocr.engine is %q; the vision model is not used.\n", ColorYellow, ColorReset, svc.OCR.Engine)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Printf("%s[FATAL]%s Could not determine user home directory: %v\n", ColorRed, ColorReset, err)
		os.Exit(1)
	}
	modelsDir := filepath.Join(home, "Dexter", "models")
	if err := os.MkdirAll(modelsDir, 0755); err != nil {
		fmt.Printf("%s[FATAL]%s Failed to create Ollama models directory: %v\n", ColorRed, ColorReset, err)
		os.Exit(1)
	}

	baseModel := svc.OCR.Model
	if baseModel == OCRModelName {
		fmt.Printf("%s[FATAL]%s ocr.model already points at '%s'; set it to the base model to rebuild.\n", ColorRed, ColorReset, OCRModelName)
		os.Exit(1)
	}

	fmt.Printf("\n%sVerifying OCR model '%s'%s...\n", ColorBlue, baseModel, ColorReset)
	modelfilePath := filepath.Join(modelsDir, "Modelfile-lipi-ocr")
	if err := processModel(OCRModelName, baseModel, modelfilePath, ocr.DefaultPrompt, ocrParameters(svc.OCR.MaxTokens)); err != nil {
		fmt.Printf("%s[ERROR]%s Failed to process OCR model: %v\n", ColorRed, ColorReset, err)
		os.Exit(1)
	}
	fmt.Printf("%s[SUCCESS]%s OCR model '%s' processed. Set ocr.model to '%s' to use it.\n", ColorGreen, ColorReset, OCRModelName, OCRModelName)

	fmt.Printf("\n%s--- Model Maker Finished ---%s\n", ColorBlue, ColorReset)
}

func processModel(newModelName, baseModel, modelfilePath, systemPrompt string, parameters map[string]string) error {
	fmt.Printf("  %s[INFO]%s Pulling base model '%s' (if not already present or up-to-date)...\n", ColorBlue, ColorReset, baseModel)
	if err := runOllamaCommand("pull", baseModel); err != nil {
		return fmt.Errorf("failed to pull base model '%s': %w", baseModel, err)
	}
	fmt.Printf("  %s[OK]%s Base model '%s' is ready.\n", ColorGreen, ColorReset, baseModel)

	modelfileContent := generateModelfile(baseModel, systemPrompt, parameters)
	if err := os.WriteFile(modelfilePath, []byte(modelfileContent), 0644); err != nil {
		return fmt.Errorf("failed to write Modelfile to %s: %w", modelfilePath, err)
	}
	fmt.Printf("  %s[OK]%s Modelfile for '%s' written to '%s'.\n", ColorGreen, ColorReset, newModelName, modelfilePath)

	if err := runOllamaCommand("create", newModelName, "-f", modelfilePath); err != nil {
		return fmt.Errorf("failed to create Ollama model '%s': %w", newModelName, err)
	}
	fmt.Printf("  %s[OK]%s Ollama model '%s' created/updated.\n", ColorGreen, ColorReset, newModelName)
	return nil
}

func runOllamaCommand(args ...string) error {
	cmd := exec.Command("ollama", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var errorMsg strings.Builder
		errorMsg.WriteString(fmt.Sprintf("ollama command failed: %v", err))
		if stdout.Len() > 0 {
			errorMsg.WriteString(fmt.Sprintf("\nStdout: %s", stdout.String()))
		}
		if stderr.Len() > 0 {
			errorMsg.WriteString(fmt.Sprintf("\nStderr: %s", stderr.String()))
		}
		return errors.New(errorMsg.String())
	}
	if stdout.Len() > 0 {
		fmt.Printf("%s", stdout.String())
	}
	return nil
}

// generateModelfile renders a Modelfile. Parameters are sorted so the file
// is stable between runs.
func generateModelfile(baseModel, systemPrompt string, parameters map[string]string) string {
	keys := make([]string, 0, len(parameters))
	for k := range parameters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("FROM %s\n", baseModel))
	for _, key := range keys {
		builder.WriteString(fmt.Sprintf("PARAMETER %s %s\n", key, parameters[key]))
	}
	builder.WriteString(fmt.Sprintf("SYSTEM \"\"\"%s\"\"\"\n", systemPrompt))
	return builder.String()
}

// ocrParameters makes the model deterministic; OCR output should never vary.
func ocrParameters(maxTokens int) map[string]string {
	params := map[string]string{
		"temperature": "0",
		"top_k":       "1",
	}
	if maxTokens > 0 {
		params["num_predict"] = fmt.Sprint(maxTokens)
	}
	return params
}
