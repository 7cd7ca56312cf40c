// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu moves splat data to and from the GPU through gogpu/wgpu HAL.
//
// The store's packed columns become four per-instance vertex buffers
// (position, color, opacity, size) drawn over a shared unit quad:
//
//	bufs, err := gpu.NewSplatBuffers(device, queue)
//	if err != nil { ... }
//	defer bufs.Destroy()
//	if _, err := bufs.Upload(store); err != nil { ... }
//
// The ID pass writes slot+1 into an R32Uint target with a Depth32Float
// attachment. Readbacks of those targets come back with rows padded to
// 256 bytes; DecodeIDs and DecodeDepth strip the padding, and Frame
// serves the decoded buffers as a paint picker.
//
// Shaders are WGSL, compiled to SPIR-V with naga.
package gpu
