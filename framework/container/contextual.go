package container

// ContextualBuilder implements the fluent contextual binding API on top of
// Bindings.
//
//	// Laravel: $app->when(PhotoController::class)->needs('$filesystem')->give(S3::class)
//	b.When("app.photoController").Needs("filesystem").Give("storage.s3")
type ContextualBuilder struct {
	bindings *Bindings
	concrete string
	needs    string
}

// When starts a contextual binding chain for a symbolic name.
func (b *Bindings) When(concrete string) *ContextualBuilder {
	return &ContextualBuilder{bindings: b, concrete: concrete}
}

// Needs names the constructor parameter being configured.
func (cb *ContextualBuilder) Needs(param string) *ContextualBuilder {
	cb.needs = param
	return cb
}

// Give sets the symbolic name used to build that parameter.
func (cb *ContextualBuilder) Give(name string) *Bindings {
	return cb.bindings.Set(cb.concrete, cb.needs, name)
}
