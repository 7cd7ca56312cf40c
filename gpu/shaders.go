// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/splat.wgsl
var splatShaderSource string

//go:embed shaders/id.wgsl
var idShaderSource string

//go:embed shaders/cursor.wgsl
var cursorShaderSource string

// Shaders holds the SPIR-V words of every pass.
type Shaders struct {
	Splat  []uint32
	ID     []uint32
	Cursor []uint32
}

// CompileShaders compiles the splat, ID and cursor WGSL sources.
func CompileShaders() (*Shaders, error) {
	splatCode, err := compileWGSL(splatShaderSource)
	if err != nil {
		return nil, fmt.Errorf("splat shader: %w", err)
	}
	idCode, err := compileWGSL(idShaderSource)
	if err != nil {
		return nil, fmt.Errorf("id shader: %w", err)
	}
	cursorCode, err := compileWGSL(cursorShaderSource)
	if err != nil {
		return nil, fmt.Errorf("cursor shader: %w", err)
	}
	return &Shaders{Splat: splatCode, ID: idCode, Cursor: cursorCode}, nil
}

// compileWGSL compiles WGSL to SPIR-V little-endian 32-bit words.
func compileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// CreateShaderModule creates a HAL shader module from SPIR-V words.
func CreateShaderModule(device hal.Device, label string, code []uint32) (hal.ShaderModule, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	m, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: code},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	return m, nil
}
