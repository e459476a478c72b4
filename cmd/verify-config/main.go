package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/EasterCompany/dex-lipi-service/config"
)

// ANSI color codes for formatted output
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
)

// ConfigSchema is the expected structure of a config file.
type ConfigSchema struct {
	FileName string
	Path     string
	Model    interface{}
	// Validate runs the service's own checks on the decoded value.
	Validate func(v interface{}) error
}

func main() {
	fmt.Printf("%s--- Lipi Config Verifier ---%s\n", ColorBlue, ColorReset)

	schemas, err := buildSchemas()
	if err != nil {
		fmt.Printf("%s[FATAL]%s Could not resolve config directory: %v\n", ColorRed, ColorReset, err)
		os.Exit(1)
	}

	allChecksPassed := true
	for _, schema := range schemas {
		fmt.Printf("\nVerifying %s'%s'%s...\n", ColorBlue, schema.FileName, ColorReset)
		if !verifyConfigFile(schema) {
			allChecksPassed = false
		}
	}

	fmt.Println("\n--------------------------")
	if allChecksPassed {
		fmt.Printf("%s✅ All configuration files seem correct.%s\n", ColorGreen, ColorReset)
	} else {
		fmt.Printf("%s❌ Some issues were found in the configuration.%s\n", ColorRed, ColorReset)
		os.Exit(1)
	}
}

func buildSchemas() ([]ConfigSchema, error) {
	var schemas []ConfigSchema
	for _, s := range []ConfigSchema{
		{
			FileName: config.ServiceFile,
			Model:    config.ServiceConfig{},
			Validate: func(v interface{}) error { return v.(*config.ServiceConfig).Validate() },
		},
		{FileName: config.DiscordFile, Model: config.DiscordConfig{}},
		{FileName: config.CacheFile, Model: config.CacheConfig{}},
	} {
		path, err := config.GetConfigPath(s.FileName)
		if err != nil {
			return nil, err
		}
		s.Path = path
		schemas = append(schemas, s)
	}
	return schemas, nil
}

func verifyConfigFile(schema ConfigSchema) bool {
	// 1. Check file existence
	content, err := os.ReadFile(schema.Path)
	if err != nil {
		fmt.Printf("  %s[FAIL]%s File not found or not readable: %v\n", ColorRed, ColorReset, err)
		return false
	}
	fmt.Printf("  %s[OK]%s File exists and is readable.\n", ColorGreen, ColorReset)

	// 2. Check for valid JSON and unknown fields
	decoder := json.NewDecoder(bytes.NewReader(content))
	decoder.DisallowUnknownFields()

	modelInstance := reflect.New(reflect.TypeOf(schema.Model)).Interface()
	if err := decoder.Decode(modelInstance); err != nil {
		fmt.Printf("  %s[FAIL]%s JSON is invalid or contains unexpected fields: %v\n", ColorRed, ColorReset, err)
		return false
	}
	fmt.Printf("  %s[OK]%s JSON is valid and all fields are recognized.\n", ColorGreen, ColorReset)

	// 3. Semantic checks
	if schema.Validate != nil {
		if err := schema.Validate(modelInstance); err != nil {
			fmt.Printf("  %s[FAIL]%s Invalid settings: %v\n", ColorRed, ColorReset, err)
			return false
		}
		fmt.Printf("  %s[OK]%s Settings are valid.\n", ColorGreen, ColorReset)
	}

	// 4. Empty top-level fields are only a warning
	if missing := emptyFields(modelInstance); len(missing) > 0 {
		fmt.Printf("  %s[WARN]%s The following fields are present but have empty/default values: %v\n", ColorYellow, ColorReset, missing)
	} else {
		fmt.Printf("  %s[OK]%s All fields have non-empty values.\n", ColorGreen, ColorReset)
	}
	return true
}

// emptyFields lists the json names of zero-valued top-level fields.
func emptyFields(v interface{}) []string {
	val := reflect.ValueOf(v).Elem()
	typ := val.Type()
	var missing []string
	for i := 0; i < val.NumField(); i++ {
		if val.Field(i).IsZero() {
			name := strings.Split(typ.Field(i).Tag.Get("json"), ",")[0]
			if name == "" {
				name = typ.Field(i).Name
			}
			missing = append(missing, name)
		}
	}
	return missing
}
