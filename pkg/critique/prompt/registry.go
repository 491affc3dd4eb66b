package prompt

import "creative-critique-be/internal/constant"

// Registry resolves the critic persona for a creative medium. It is built
// once at startup and read-only afterwards.
type Registry struct {
	prompts  map[string]string
	fallback string
}

func NewRegistry() *Registry {
	prompts := make(map[string]string, len(constant.MediaPrompts))
	for media, p := range constant.MediaPrompts {
		prompts[media] = p
	}
	return &Registry{
		prompts:  prompts,
		fallback: constant.MediaPrompts[constant.MediaTypePhotography],
	}
}

// PromptFor returns the persona prompt for mediaType. Unknown media get the
// photography persona so a bad client value never blocks an analysis.
func (r *Registry) PromptFor(mediaType string) string {
	if p, ok := r.prompts[mediaType]; ok {
		return p
	}
	return r.fallback
}

// Known reports whether mediaType has a dedicated persona.
func (r *Registry) Known(mediaType string) bool {
	_, ok := r.prompts[mediaType]
	return ok
}
