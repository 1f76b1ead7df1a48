//go:build !windows && cgo

// Package kobertbinding provides Go bindings for KoBERT-based sequence
// classification backed by a Rust implementation via C FFI.
//
// Conventions:
//   - Rust builds a static/dynamic library via cargo build --release
//   - Go links against it via #cgo LDFLAGS
//   - C strings are passed via CString/CStr
//   - Rust-allocated memory is freed via explicit free functions
//
// The binding owns tokenization (fixed maximum sequence length, deterministic
// padding/truncation) and the forward pass; it returns raw per-class logits.
// Softmax and argmax live on the Go side, in pkg/classification.
package kobertbinding

/*
#cgo LDFLAGS: -L${SRCDIR}/target/release -lkobert_purgo -ldl -lm
#include <stdlib.h>
#include <stdbool.h>

// Raw logits for one classified text.
typedef struct {
    float* logits;         // Per-class logits, length num_classes
    int num_classes;
    int sequence_length;   // Tokens actually consumed (after truncation)
    bool error;
} LogitsResult;

extern bool init_kobert_classifier(const char* model_path, int max_length, bool use_cpu);
extern int kobert_infer_logits(const char* text, LogitsResult* result);
extern void free_logits(float* logits, int num_classes);
*/
import "C"

import (
	"fmt"
	"sync"
	"unsafe"
)

var (
	initOnce sync.Once
	initErr  error
)

// Init loads the pretrained KoBERT weights from modelPath and prepares the
// tokenizer with the given maximum sequence length. Inference runs on an
// accelerator when available unless useCPU is set; device placement does not
// affect outputs. Init is idempotent; only the first call takes effect.
func Init(modelPath string, maxLength int, useCPU bool) error {
	initOnce.Do(func() {
		cModelPath := C.CString(modelPath)
		defer C.free(unsafe.Pointer(cModelPath))

		if !C.init_kobert_classifier(cModelPath, C.int(maxLength), C.bool(useCPU)) {
			initErr = fmt.Errorf("kobertbinding: failed to initialize classifier from %s", modelPath)
		}
	})
	return initErr
}

// InferLogits tokenizes text (truncating past the configured maximum
// sequence length) and runs the forward pass, returning raw per-class
// logits. Deterministic given identical weights and input.
func InferLogits(text string) ([]float32, error) {
	cText := C.CString(text)
	defer C.free(unsafe.Pointer(cText))

	var result C.LogitsResult
	status := C.kobert_infer_logits(cText, &result)
	if status != 0 || result.error {
		return nil, fmt.Errorf("kobertbinding: inference failed (status: %d)", status)
	}

	numClasses := int(result.num_classes)
	logits := make([]float32, numClasses)
	cArray := (*[1 << 20]C.float)(unsafe.Pointer(result.logits))[:numClasses:numClasses]
	for i := 0; i < numClasses; i++ {
		logits[i] = float32(cArray[i])
	}

	C.free_logits(result.logits, result.num_classes)
	return logits, nil
}
