package typegraph

import (
	"github.com/viant/typegraph/meta"
)

// Builder turns structural type descriptions into immutable node graphs.
// A builder is deterministic for a given (description, config) pair and safe
// for concurrent use.
type Builder struct {
	config Config
	cache  *nodeCache
}

// New creates a builder with its own memoization cache
func New(opts ...Option) *Builder {
	return &Builder{config: NewConfig(opts...), cache: newNodeCache()}
}

// Build builds a node graph with the shared process-wide cache
func Build(description Description, opts ...Option) (*Node, error) {
	builder := &Builder{config: NewConfig(opts...), cache: sharedCache}
	return builder.Build(description)
}

// Config returns the builder config
func (b *Builder) Config() Config {
	return b.config
}

// buildState tracks the in-progress build path. Descriptions map to their
// position on the path; lowest records the shallowest path position any
// recursive marker of the current subtree points back to.
type buildState struct {
	path   map[Description]int
	stack  []*Node
	lowest int
}

// Build returns the node graph for description or fails with
// *ConstructionError. Construction is all-or-nothing: either a complete
// immutable graph or an error, never a partial graph.
func (b *Builder) Build(description Description) (*Node, error) {
	state := &buildState{path: map[Description]int{}}
	return b.build(description, state, 0)
}

func (b *Builder) build(description Description, state *buildState, depth int) (*Node, error) {
	if description == nil {
		return nil, constructionErrorf("nil description")
	}
	if index, ok := state.path[description]; ok {
		// direct or indirect self-reference: terminate with a marker
		// pointing back at the in-progress ancestor
		if index < state.lowest {
			state.lowest = index
		}
		return &Node{kind: KindRecursive, name: description.TypeName(), referent: state.stack[index], metadata: meta.Empty}, nil
	}
	if b.config.MaxDepth > 0 && depth >= b.config.MaxDepth {
		return &Node{kind: KindDepthBound, name: description.TypeName(), metadata: meta.Empty}, nil
	}
	// depth-bound markers are positional, so bounded configs bypass the cache:
	// a node built at one depth is not reusable at another
	cacheable := b.config.MaxDepth <= 0
	key := cacheKey{description: description, config: b.config.fingerprint()}
	if cacheable {
		if node, ok := b.cache.load(key); ok {
			return node, nil
		}
	}

	// placeholder/backfill: recursive markers created beneath reference the
	// placeholder, which receives the completed node before publication
	placeholder := &Node{}
	index := len(state.stack)
	state.path[description] = index
	state.stack = append(state.stack, placeholder)
	outerLowest := state.lowest
	state.lowest = len(state.stack)
	built, err := b.dispatch(description, state, depth)
	delete(state.path, description)
	state.stack = state.stack[:index]
	subtreeLowest := state.lowest
	if outerLowest < state.lowest {
		state.lowest = outerLowest
	}
	if err != nil {
		return nil, err
	}
	if b.config.TrackSource {
		if located, ok := description.(Located); ok {
			built.source = located.Source()
		}
	}
	*placeholder = *built
	if !cacheable || subtreeLowest < index {
		// a subgraph whose recursive markers point above its own root is
		// path-dependent; only the cycle root itself is safe to share
		return placeholder, nil
	}
	return b.cache.store(key, placeholder), nil
}

// dispatch classifies the description through capability assertions in fixed
// priority order; first match wins.
func (b *Builder) dispatch(description Description, state *buildState, depth int) (*Node, error) {
	if qualified, ok := description.(Qualified); ok {
		return b.buildQualified(qualified, state, depth)
	}
	if aliased, ok := description.(Aliased); ok {
		return b.buildAlias(aliased, state, depth)
	}
	if typeParam, ok := description.(TypeParamDesc); ok {
		return b.buildTypeParam(typeParam, state, depth)
	}
	if unresolved, ok := description.(Unresolvable); ok {
		return b.buildUnresolved(unresolved, state, depth)
	}
	if union, ok := description.(UnionDesc); ok {
		return b.buildUnion(union, state, depth)
	}
	if parameterized, ok := description.(ParameterizedDesc); ok {
		return b.buildParameterized(parameterized, state, depth)
	}
	if generic, ok := description.(GenericDesc); ok {
		return &Node{kind: KindGeneric, name: generic.TypeName(), arity: generic.Arity(), metadata: meta.Empty}, nil
	}
	if record, ok := description.(InterfaceRecordDesc); ok {
		return b.buildRecord(record, KindInterfaceRecord, record.InterfaceFields(), state, depth)
	}
	if record, ok := description.(PartialRecordDesc); ok {
		return b.buildRecord(record, KindPartialRecord, record.PartialFields(), state, depth)
	}
	if record, ok := description.(PositionalRecordDesc); ok {
		return b.buildRecord(record, KindPositionalRecord, record.PositionalFields(), state, depth)
	}
	if record, ok := description.(FieldRecordDesc); ok {
		return b.buildRecord(record, KindFieldRecord, record.RecordFields(), state, depth)
	}
	if signature, ok := description.(SignatureDesc); ok {
		return b.buildSignature(signature, state, depth)
	}
	return b.buildConcrete(description)
}

// buildQualified hoists wrapper metadata onto the wrapped base node. Stacked
// wrappers around one base concatenate outer-before-inner into a single
// collection on a single node. With hoisting off, the wrapper stays a
// distinct annotated node whose single child is the base.
func (b *Builder) buildQualified(qualified Qualified, state *buildState, depth int) (*Node, error) {
	base := qualified.QualifiedBase()
	if base == nil {
		return nil, constructionErrorf("qualified wrapper %q has no base", qualified.TypeName())
	}
	items := qualified.MetadataItems()
	if !b.config.HoistMetadata {
		baseNode, err := b.build(base, state, depth+1)
		if err != nil {
			return nil, err
		}
		return &Node{
			kind:       KindAnnotated,
			name:       qualified.TypeName(),
			underlying: baseNode,
			metadata:   meta.FromSlice(items, true),
		}, nil
	}
	// wrapper layers share the base's depth: unwrapping is not descent
	baseNode, err := b.build(base, state, depth)
	if err != nil {
		return nil, err
	}
	merged := make([]interface{}, 0, len(items)+baseNode.Metadata().Len())
	merged = append(merged, items...)
	merged = append(merged, baseNode.Metadata().Items()...)
	return baseNode.withMetadata(meta.FromSlice(merged, true)), nil
}

func (b *Builder) buildAlias(aliased Aliased, state *buildState, depth int) (*Node, error) {
	target := aliased.AliasTarget()
	if target == nil {
		return nil, constructionErrorf("alias %q has no target", aliased.TypeName())
	}
	underlying, err := b.build(target, state, depth+1)
	if err != nil {
		return nil, err
	}
	var params []*Node
	for _, param := range aliased.AliasParams() {
		node, err := b.build(param, state, depth+1)
		if err != nil {
			return nil, err
		}
		params = append(params, node)
	}
	return &Node{kind: KindAlias, name: aliased.TypeName(), underlying: underlying, args: params, metadata: meta.Empty}, nil
}

func (b *Builder) buildTypeParam(typeParam TypeParamDesc, state *buildState, depth int) (*Node, error) {
	node := &Node{kind: KindTypeParam, name: typeParam.TypeName(), metadata: meta.Empty}
	if bound := typeParam.Bound(); bound != nil {
		built, err := b.build(bound, state, depth+1)
		if err != nil {
			return nil, err
		}
		node.bound = built
	}
	for _, constraint := range typeParam.Constraints() {
		built, err := b.build(constraint, state, depth+1)
		if err != nil {
			return nil, err
		}
		node.constraint = append(node.constraint, built)
	}
	return node, nil
}

func (b *Builder) buildUnresolved(unresolved Unresolvable, state *buildState, depth int) (*Node, error) {
	switch b.config.Mode {
	case EvalStringified:
		return &Node{kind: KindUnresolved, name: unresolved.TypeName(), metadata: meta.Empty}, nil
	case EvalDeferred:
		return &Node{kind: KindUnresolved, name: unresolved.TypeName(), namespace: unresolved.Namespace(), metadata: meta.Empty}, nil
	}
	resolved, err := unresolved.Resolve()
	if err != nil {
		return nil, &ConstructionError{
			Reason: "unresolvable forward reference",
			Err:    &ResolutionError{Name: unresolved.TypeName(), Namespace: unresolved.Namespace(), Err: err},
		}
	}
	// resolution substitutes the reference in place, no extra depth
	return b.build(resolved, state, depth)
}

func (b *Builder) buildUnion(union UnionDesc, state *buildState, depth int) (*Node, error) {
	members := union.Members()
	if len(members) == 0 {
		return nil, constructionErrorf("union %q has no members", union.TypeName())
	}
	node := &Node{kind: KindUnion, name: union.TypeName(), metadata: meta.Empty}
	for _, member := range members {
		built, err := b.build(member, state, depth+1)
		if err != nil {
			return nil, err
		}
		node.members = append(node.members, built)
	}
	return node, nil
}

func (b *Builder) buildParameterized(parameterized ParameterizedDesc, state *buildState, depth int) (*Node, error) {
	originDesc := parameterized.ParamOrigin()
	if originDesc == nil {
		return nil, constructionErrorf("parameterized %q has no origin", parameterized.TypeName())
	}
	origin, err := b.build(originDesc, state, depth+1)
	if err != nil {
		return nil, err
	}
	args := parameterized.ParamArgs()
	node := &Node{kind: KindParameterized, name: parameterized.TypeName(), origin: origin, metadata: meta.Empty}
	for _, arg := range args {
		built, err := b.build(arg, state, depth+1)
		if err != nil {
			return nil, err
		}
		node.args = append(node.args, built)
	}
	node.argEdges = argEdges(parameterized, len(args))
	return node, nil
}

// argEdges labels type-argument edges: keyed two-argument containers get
// key/element edges, single-element containers an element edge, everything
// else indexed arg edges.
func argEdges(parameterized ParameterizedDesc, count int) []Edge {
	if keyed, ok := parameterized.(KeyedDesc); ok && count == 2 && keyed.KeyArg() != nil {
		return []Edge{plainEdge(EdgeKey), plainEdge(EdgeElement)}
	}
	if element, ok := parameterized.(ElementDesc); ok && count == 1 && element.ElemArg() != nil {
		return []Edge{plainEdge(EdgeElement)}
	}
	ret := make([]Edge, count)
	for i := 0; i < count; i++ {
		ret[i] = indexedEdge(EdgeArg, i)
	}
	return ret
}

func (b *Builder) buildRecord(description Description, kind Kind, descriptors []FieldDescriptor, state *buildState, depth int) (*Node, error) {
	node := &Node{kind: kind, name: description.TypeName(), metadata: meta.Empty}
	if !b.config.IncludeMembers {
		return node, nil
	}
	for _, descriptor := range descriptors {
		if descriptor.Type == nil {
			return nil, constructionErrorf("record %q field %q has no type", description.TypeName(), descriptor.Name)
		}
		child, err := b.build(descriptor.Type, state, depth+1)
		if err != nil {
			return nil, err
		}
		node.fields = append(node.fields, Field{
			Name:           descriptor.Name,
			Node:           child,
			Required:       descriptor.Required,
			Default:        descriptor.Default,
			HasDefault:     descriptor.HasDefault,
			DefaultFactory: descriptor.DefaultFactory,
		})
	}
	return node, nil
}

func (b *Builder) buildSignature(signature SignatureDesc, state *buildState, depth int) (*Node, error) {
	node := &Node{kind: KindSignature, name: signature.TypeName(), metadata: meta.Empty}
	for _, descriptor := range signature.SignatureParams() {
		if descriptor.Type == nil {
			return nil, constructionErrorf("signature %q parameter %q has no type", signature.TypeName(), descriptor.Name)
		}
		child, err := b.build(descriptor.Type, state, depth+1)
		if err != nil {
			return nil, err
		}
		node.params = append(node.params, Parameter{
			Name:       descriptor.Name,
			Kind:       descriptor.Kind,
			Node:       child,
			Default:    descriptor.Default,
			HasDefault: descriptor.HasDefault,
		})
	}
	if returnDesc := signature.SignatureReturn(); returnDesc != nil {
		result, err := b.build(returnDesc, state, depth+1)
		if err != nil {
			return nil, err
		}
		node.result = result
	}
	return node, nil
}

func (b *Builder) buildConcrete(description Description) (*Node, error) {
	node := &Node{kind: KindConcrete, name: description.TypeName(), metadata: meta.Empty}
	if concrete, ok := description.(ConcreteDesc); ok {
		node.rType = concrete.ConcreteType()
	}
	return node, nil
}
