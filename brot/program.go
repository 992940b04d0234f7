package brot

import (
	_ "embed"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/oliverbestmann/brotview/pulse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

//go:embed brot.wgsl
var shaderSource string

// Program renders the mandelbrot set into a pulse.FrameBuffer.
type Program struct {
	ctx           *pulse.Context
	pipelineCache *pulse.PipelineCache[pipelineConfig]
	bufUniforms   *wgpu.Buffer

	MaxIterations uint32
}

func NewProgram(ctx *pulse.Context, maxIterations uint32) (*Program, error) {
	bufUniforms, err := ctx.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Brot.Uniforms",
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:  uint64(unsafe.Sizeof(Uniforms{})),
	})

	if err != nil {
		return nil, fmt.Errorf("create uniform buffer: %w", err)
	}

	p := &Program{
		ctx:           ctx,
		pipelineCache: pulse.NewPipelineCache[pipelineConfig](ctx),
		bufUniforms:   bufUniforms,
		MaxIterations: maxIterations,
	}

	return p, nil
}

// Draw clears the frame buffer and renders the part of the
// mandelbrot set visible through the camera.
func (p *Program) Draw(fb pulse.FrameBuffer, camera Camera) error {
	uniforms := NewUniforms(camera, fb.Width(), fb.Height(), p.MaxIterations)

	err := p.ctx.Queue.WriteBuffer(p.bufUniforms, 0, wgpu.ToBytes([]Uniforms{uniforms}))
	if err != nil {
		return fmt.Errorf("write uniforms: %w", err)
	}

	pc, err := p.pipelineCache.Get(pipelineConfig{
		ColorFormat: fb.Color.Format(),
		DepthFormat: fb.Depth.Format(),
	})

	if err != nil {
		return err
	}

	bindGroup, err := p.ctx.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Brot.BindGroup",
		Layout: pc.Layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  p.bufUniforms,
				Size:    wgpu.WholeSize,
			},
		},
	})

	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}

	defer bindGroup.Release()

	encoder, err := p.ctx.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "Brot"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}

	defer encoder.Release()

	pass := encoder.BeginRenderPass(fb.RenderPass("Brot", pulse.ColorBlack))

	passGuard := pulse.NewReleaseGuard(pass)
	defer passGuard.Release()

	pass.SetPipeline(pc.Pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.Draw(3, 1, 0, 0)

	if err := pass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	passGuard.Release()

	buf, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish command encoder: %w", err)
	}

	defer buf.Release()

	p.ctx.Queue.Submit(buf)

	return nil
}

func (p *Program) Release() {
	p.pipelineCache.Purge()
	p.bufUniforms.Release()
}

type pipelineConfig struct {
	ColorFormat wgpu.TextureFormat
	DepthFormat wgpu.TextureFormat
}

func (conf pipelineConfig) Specialize(dev *wgpu.Device) (*wgpu.RenderPipeline, error) {
	slog.Info(
		"Create RenderPipeline for mandelbrot",
		slog.Any("color", conf.ColorFormat),
		slog.Any("depth", conf.DepthFormat),
	)

	shader, err := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:      "Brot.Shader",
		WGSLSource: &wgpu.ShaderSourceWGSL{Code: shaderSource},
	})

	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}

	defer shader.Release()

	stencil := wgpu.StencilFaceState{
		Compare:     wgpu.CompareFunctionAlways,
		FailOp:      wgpu.StencilOperationKeep,
		DepthFailOp: wgpu.StencilOperationKeep,
		PassOp:      wgpu.StencilOperationKeep,
	}

	return dev.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: fmt.Sprintf("Brot.%s", conf.ColorFormat),
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    conf.ColorFormat,
					Blend:     &wgpu.BlendStateReplace,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            conf.DepthFormat,
			DepthWriteEnabled: wgpu.OptionalBoolTrue,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      stencil,
			StencilBack:       stencil,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
}
