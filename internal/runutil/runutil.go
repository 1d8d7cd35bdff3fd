// internal/runutil/runutil.go
package runutil

import (
	"path/filepath"
	"runtime"
	"strings"
)

// EffectiveThreads resolves the --threads value: 0 means all CPUs.
func EffectiveThreads(threads int) int {
	if threads <= 0 {
		return runtime.NumCPU()
	}
	return threads
}

// QCOutputExt picks the extension for QC outputs. An explicit name wins;
// otherwise the first QC input's format is kept, and anything unknown
// (a directory, stdin) falls back to ".xlsx".
func QCOutputExt(override string, inputs []string) string {
	if override != "" {
		if ext := strings.ToLower(filepath.Ext(override)); knownQC(ext) {
			return ext
		}
	}
	if len(inputs) > 0 {
		if ext := strings.ToLower(filepath.Ext(inputs[0])); knownQC(ext) {
			return ext
		}
	}
	return ".xlsx"
}

// QCOutputName is the augmented table's file name.
func QCOutputName(override string, inputs []string) string {
	if override != "" && knownQC(strings.ToLower(filepath.Ext(override))) {
		return filepath.Base(override)
	}
	return "Modified_QC_Data_with_pairs" + QCOutputExt("", inputs)
}

func knownQC(ext string) bool {
	switch ext {
	case ".xlsx", ".csv", ".tsv":
		return true
	}
	return false
}
