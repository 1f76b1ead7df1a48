//go:build windows || !cgo

// Package kobertbinding provides Go bindings for KoBERT-based sequence
// classification. This is the mock implementation for platforms without CGo;
// both entry points report the classifier as unavailable.
package kobertbinding

import "fmt"

// Init reports the classifier as unavailable (built without CGo).
func Init(modelPath string, maxLength int, useCPU bool) error {
	return fmt.Errorf("kobertbinding: classifier not available (built without CGo)")
}

// InferLogits reports the classifier as unavailable (built without CGo).
func InferLogits(text string) ([]float32, error) {
	return nil, fmt.Errorf("kobertbinding: classifier not available (built without CGo)")
}
