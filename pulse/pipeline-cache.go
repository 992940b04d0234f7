package pulse

import (
	"fmt"

	"github.com/hashicorp/golang-lru/v2"
	"github.com/oliverbestmann/webgpu/wgpu"
)

type PipelineConfig interface {
	comparable

	// Specialize builds the render pipeline described by this config
	Specialize(dev *wgpu.Device) (*wgpu.RenderPipeline, error)
}

// CachedPipeline is a render pipeline together with the layout
// of its first bind group.
type CachedPipeline struct {
	Pipeline *wgpu.RenderPipeline
	Layout   *wgpu.BindGroupLayout
}

// PipelineCache keeps the most recently used pipelines keyed by their config.
// Evicted pipelines are released.
type PipelineCache[C PipelineConfig] struct {
	device    *wgpu.Device
	pipelines *lru.Cache[C, CachedPipeline]
}

func NewPipelineCache[C PipelineConfig](ctx *Context) *PipelineCache[C] {
	pipelines, _ := lru.NewWithEvict(4, func(_ C, cached CachedPipeline) {
		cached.Layout.Release()
		cached.Pipeline.Release()
	})

	return &PipelineCache[C]{
		device:    ctx.Device,
		pipelines: pipelines,
	}
}

func (p *PipelineCache[C]) Get(conf C) (CachedPipeline, error) {
	if cached, ok := p.pipelines.Get(conf); ok {
		return cached, nil
	}

	pipeline, err := conf.Specialize(p.device)
	if err != nil {
		return CachedPipeline{}, fmt.Errorf("build pipeline for %+v: %w", conf, err)
	}

	cached := CachedPipeline{
		Pipeline: pipeline,
		Layout:   pipeline.GetBindGroupLayout(0),
	}

	p.pipelines.Add(conf, cached)

	return cached, nil
}

// Purge releases all cached pipelines.
func (p *PipelineCache[C]) Purge() {
	p.pipelines.Purge()
}
