package pulse

import (
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/webgpu/wgpu"
)

//go:embed blit.wgsl
var blitShaderCode string

// BlitCommand copies an attachment into a region of a target texture,
// scaling it with a linear filter.
type BlitCommand struct {
	ctx           *Context
	pipelineCache *PipelineCache[blitPipelineConfig]
	samplers      *SamplerCache
}

func NewBlitCommand(ctx *Context) *BlitCommand {
	return &BlitCommand{
		ctx:           ctx,
		pipelineCache: NewPipelineCache[blitPipelineConfig](ctx),
		samplers:      NewSamplerCache(ctx.Device),
	}
}

func (b *BlitCommand) Release() {
	b.pipelineCache.Purge()
	b.samplers.Purge()
}

type BlitOptions struct {
	// Region of the target to draw the source into
	Region Rectangle2u

	// Color to clear the rest of the target with
	ClearColor Color
}

func (b *BlitCommand) Draw(target *Texture, source Attachment, opts BlitOptions) error {
	bounds := RectangleFromXYWH(0, 0, target.Width(), target.Height())
	if !bounds.Contains(opts.Region) {
		return fmt.Errorf("blit region %s outside of target %s", opts.Region, bounds)
	}

	sampler, err := b.samplers.Get(wgpu.SamplerDescriptor{
		Label:         "Blit.Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   1,
		MaxAnisotropy: 1,
	})

	if err != nil {
		return err
	}

	pc, err := b.pipelineCache.Get(blitPipelineConfig{TargetFormat: target.Format()})
	if err != nil {
		return err
	}

	bindGroup, err := b.ctx.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Blit.BindGroup",
		Layout: pc.Layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding:     0,
				TextureView: source.View(),
			},
			{
				Binding: 1,
				Sampler: sampler,
			},
		},
	})

	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}

	defer bindGroup.Release()

	encoder, err := b.ctx.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "Blit"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}

	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Blit",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       target.View(),
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: opts.ClearColor.ToWGPU(),
			},
		},
	})

	passGuard := NewReleaseGuard(pass)
	defer passGuard.Release()

	x, y, w, h := opts.Region.XYWH()

	pass.SetViewport(float32(x), float32(y), float32(w), float32(h), 0, 1)
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

	b.ctx.Submit(buf)

	return nil
}

type blitPipelineConfig struct {
	TargetFormat wgpu.TextureFormat
}

func (conf blitPipelineConfig) Specialize(dev *wgpu.Device) (*wgpu.RenderPipeline, error) {
	slog.Info(
		"Create RenderPipeline for blit",
		slog.Any("format", conf.TargetFormat),
	)

	shader, err := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:      "Blit.Shader",
		WGSLSource: &wgpu.ShaderSourceWGSL{Code: blitShaderCode},
	})

	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}

	defer shader.Release()

	return dev.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: fmt.Sprintf("Blit.%s", conf.TargetFormat),
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    conf.TargetFormat,
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
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
}
