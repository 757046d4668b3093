package classfile

// FieldNode is a field's tree representation, alongside MethodNode,
// covering the field/class structures an end-to-end reader needs a home
// for even though attribute serialization itself is out of scope for
// this module.
type FieldNode struct {
	Access     int
	Name       string
	Descriptor string
	Signature  string
	Value      any
}

var _ FieldVisitor = (*FieldNode)(nil)

func NewFieldNode(access int, name, descriptor, signature string, value any) *FieldNode {
	return &FieldNode{Access: access, Name: name, Descriptor: descriptor, Signature: signature, Value: value}
}

func (f *FieldNode) VisitEnd() {}

// InnerClassEntry is one row of a class's InnerClasses attribute.
type InnerClassEntry struct {
	Name, OuterName, InnerName string
	Access                     int
}

// ClassNode is a whole class file's tree representation: it implements
// ClassVisitor so an external reader can build one by visiting it
// directly, mirroring the field-per-concern, slice-of-sub-nodes layout
// MethodNode uses for method-level structures.
type ClassNode struct {
	Version    int
	Access     int
	Name       string
	Signature  string
	SuperName  string
	Interfaces []string

	Source, SourceDebug string
	OuterClassOwner     string
	OuterClassName      string
	OuterClassDesc      string
	NestHost            string
	NestMembers         []string
	InnerClasses        []InnerClassEntry

	Fields  []*FieldNode
	Methods []*MethodNode
}

var _ ClassVisitor = (*ClassNode)(nil)

// NewClassNode returns an empty class tree ready to be driven by a
// ClassVisitor event stream.
func NewClassNode() *ClassNode {
	return &ClassNode{}
}

func (c *ClassNode) Visit(version, access int, name, signature, superName string, interfaces []string) {
	c.Version = version
	c.Access = access
	c.Name = name
	c.Signature = signature
	c.SuperName = superName
	c.Interfaces = append([]string(nil), interfaces...)
}

func (c *ClassNode) VisitSource(source, debug string) {
	c.Source, c.SourceDebug = source, debug
}

func (c *ClassNode) VisitModule(name string, access int, version string) {}

func (c *ClassNode) VisitOuterClass(owner, name, descriptor string) {
	c.OuterClassOwner, c.OuterClassName, c.OuterClassDesc = owner, name, descriptor
}

func (c *ClassNode) VisitNestHost(nestHost string) { c.NestHost = nestHost }

func (c *ClassNode) VisitNestMember(nestMember string) {
	c.NestMembers = append(c.NestMembers, nestMember)
}

func (c *ClassNode) VisitInnerClass(name, outerName, innerName string, access int) {
	c.InnerClasses = append(c.InnerClasses, InnerClassEntry{
		Name: name, OuterName: outerName, InnerName: innerName, Access: access,
	})
}

func (c *ClassNode) VisitField(access int, name, descriptor, signature string, value any) FieldVisitor {
	f := NewFieldNode(access, name, descriptor, signature, value)
	c.Fields = append(c.Fields, f)
	return f
}

func (c *ClassNode) VisitMethod(access int, name, descriptor, signature string, exceptions []string) MethodVisitor {
	m := NewMethodNode(access, name, descriptor, signature, exceptions)
	c.Methods = append(c.Methods, m)
	return m
}

func (c *ClassNode) VisitEnd() {}

// Accept drives v with this class's full structure, in the same order a
// reader would naturally encounter it, reusing each MethodNode's own
// Accept to replay its instructions and attributes. VisitModule is never
// replayed, since ClassNode does not record module data.
func (c *ClassNode) Accept(v ClassVisitor) {
	v.Visit(c.Version, c.Access, c.Name, c.Signature, c.SuperName, c.Interfaces)
	if c.Source != "" || c.SourceDebug != "" {
		v.VisitSource(c.Source, c.SourceDebug)
	}
	if c.NestHost != "" {
		v.VisitNestHost(c.NestHost)
	}
	if c.OuterClassOwner != "" {
		v.VisitOuterClass(c.OuterClassOwner, c.OuterClassName, c.OuterClassDesc)
	}
	for _, m := range c.NestMembers {
		v.VisitNestMember(m)
	}
	for _, ic := range c.InnerClasses {
		v.VisitInnerClass(ic.Name, ic.OuterName, ic.InnerName, ic.Access)
	}
	for _, f := range c.Fields {
		if fv := v.VisitField(f.Access, f.Name, f.Descriptor, f.Signature, f.Value); fv != nil {
			fv.VisitEnd()
		}
	}
	for _, m := range c.Methods {
		if mv := v.VisitMethod(m.Access, m.Name, m.Descriptor, m.Signature, m.Exceptions); mv != nil {
			m.Accept(mv)
		}
	}
	v.VisitEnd()
}
