package pulse

import (
	"fmt"

	"github.com/hashicorp/golang-lru/v2"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// SamplerCache hands out samplers of one device, keyed by their descriptor.
// Samplers are released when evicted or when the cache is purged.
type SamplerCache struct {
	device   *wgpu.Device
	samplers *lru.Cache[wgpu.SamplerDescriptor, *wgpu.Sampler]
}

func NewSamplerCache(dev *wgpu.Device) *SamplerCache {
	samplers, _ := lru.NewWithEvict(8, func(_ wgpu.SamplerDescriptor, sampler *wgpu.Sampler) {
		sampler.Release()
	})

	return &SamplerCache{device: dev, samplers: samplers}
}

// Get returns a sampler matching desc. The caller must not release it.
func (c *SamplerCache) Get(desc wgpu.SamplerDescriptor) (*wgpu.Sampler, error) {
	if sampler, ok := c.samplers.Get(desc); ok {
		return sampler, nil
	}

	sampler, err := c.device.CreateSampler(&desc)
	if err != nil {
		return nil, fmt.Errorf("create sampler %q: %w", desc.Label, err)
	}

	c.samplers.Add(desc, sampler)

	return sampler, nil
}

func (c *SamplerCache) Purge() {
	c.samplers.Purge()
}
