package pieces

import "github.com/rickchristie/piece/model"

// Kinds returns every stock kind.
func Kinds() []*model.Kind {
	return []*model.Kind{
		TextKind,
		HeadingKind,
		CodeKind,
		ListKind,
		SectionKind,
		TagKind,
		YAMLKind,
		JSONKind,
	}
}

// Register installs the stock kinds on r.
func Register(r *model.Registry) error {
	return r.Register(Kinds()...)
}

// MustRegister is like Register but panics on error.
func MustRegister(r *model.Registry) *model.Registry {
	return r.MustRegister(Kinds()...)
}

// NewRegistry returns a registry holding the stack kind and every stock kind.
func NewRegistry() *model.Registry {
	return MustRegister(model.NewRegistry())
}
