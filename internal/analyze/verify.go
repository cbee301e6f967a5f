package analyze

import (
	"go/constant"
	"go/types"
	"path"

	"pds-generator/internal/catalog"
	"pds-generator/internal/gen"
	"pds-generator/internal/schema"
)

// itemMethods are declared on the pointer of every defining item.
var itemMethods = []string{"Clear", "DeepCopy", "Equals", "Write", "Read", "Validate"}

// Verify checks the packages generated for pkg. root is the import path of
// the root package and def the version it aliases. The root package and
// every version package must have been added.
func (a *Analyzer) Verify(pkg *schema.Package, root string, def *schema.Version) Report {
	var r Report

	for _, v := range pkg.Versions() {
		p := path.Join(root, gen.VersionPackage(v))

		tp, ok := a.Package(p)
		if !ok {
			r.addf(p, "", "package not loaded")
			continue
		}

		for _, it := range v.Items() {
			obj := tp.Scope().Lookup(it.Name())

			if it.Lifecycle() == schema.LifecycleDeleted {
				if obj != nil {
					r.addf(p, it.Name(), "deleted item is still declared")
				}

				continue
			}

			tn, ok := obj.(*types.TypeName)
			if !ok {
				r.addf(p, it.Name(), "type not declared")
				continue
			}

			verifyItem(&r, p, root, it, tn)
		}
	}

	a.verifyRoot(&r, root, def)

	return r
}

func verifyItem(r *Report, p, root string, it *schema.Item, tn *types.TypeName) {
	if !it.IsDefining() {
		if !tn.IsAlias() {
			r.addf(p, it.Name(), "identical item is not an alias")
			return
		}

		want := path.Join(root, gen.VersionPackage(it.Definition().Version()))

		named, ok := types.Unalias(tn.Type()).(*types.Named)
		if !ok || named.Obj().Pkg() == nil || named.Obj().Pkg().Path() != want || named.Obj().Name() != it.Name() {
			r.addf(p, it.Name(), "aliases %s, want %s.%s", types.Unalias(tn.Type()), want, it.Name())
		}

		return
	}

	if tn.IsAlias() {
		r.addf(p, it.Name(), "defining item is an alias")
		return
	}

	st, ok := tn.Type().Underlying().(*types.Struct)
	if !ok {
		r.addf(p, it.Name(), "not a struct: %s", tn.Type().Underlying())
		return
	}

	fields := it.Fields()
	if st.NumFields() != len(fields) {
		r.addf(p, it.Name(), "has %d fields, want %d", st.NumFields(), len(fields))
	}

	for i := range min(st.NumFields(), len(fields)) {
		if got := st.Field(i).Name(); got != fields[i].Name() {
			r.addf(p, it.Name(), "field %d is %s, want %s", i, got, fields[i].Name())
		}
	}

	methods := itemMethods
	if it.IsEntity() {
		methods = append(methods[:len(methods):len(methods)], "EntityTypeString")
	}

	if it.Lifecycle() == schema.LifecycleModified {
		methods = append(methods[:len(methods):len(methods)], "FromPrevious", "ToPrevious")
	}

	ptr := types.NewPointer(tn.Type())

	for _, m := range methods {
		obj, _, _ := types.LookupFieldOrMethod(ptr, true, tn.Pkg(), m)
		if _, ok := obj.(*types.Func); !ok {
			r.addf(p, it.Name(), "method %s not declared", m)
		}
	}
}

func (a *Analyzer) verifyRoot(r *Report, root string, def *schema.Version) {
	rp, ok := a.Package(root)
	if !ok {
		r.addf(root, "", "package not loaded")
		return
	}

	if _, ok := rp.Scope().Lookup("Record").(*types.Var); !ok {
		r.addf(root, "Record", "entity record not declared")
	}

	want := path.Join(root, gen.VersionPackage(def))

	for _, it := range def.Items() {
		if it.Lifecycle() == schema.LifecycleDeleted {
			continue
		}

		tn, ok := rp.Scope().Lookup(it.Name()).(*types.TypeName)
		if !ok || !tn.IsAlias() {
			r.addf(root, it.Name(), "no alias of %s", def.Name())
			continue
		}

		// The alias may go through an identical item to an older version.
		target := types.Unalias(tn.Type())

		vp, ok := a.Package(want)
		if !ok {
			continue
		}

		vt, ok := vp.Scope().Lookup(it.Name()).(*types.TypeName)
		if !ok || !types.Identical(target, types.Unalias(vt.Type())) {
			r.addf(root, it.Name(), "aliases %s, want the item of %s", target, def.Name())
		}
	}
}

// VerifyRuntime checks the data type and container ids of the runtime
// package at p against cat.
func (a *Analyzer) VerifyRuntime(cat *catalog.Catalog, p string) Report {
	var r Report

	tp, ok := a.Package(p)
	if !ok {
		r.addf(p, "", "package not loaded")
		return r
	}

	check := func(name string, want int64) {
		c, ok := tp.Scope().Lookup(name).(*types.Const)
		if !ok {
			r.addf(p, name, "constant not declared")
			return
		}

		got, exact := constant.Int64Val(c.Val())
		if !exact || got != want {
			r.addf(p, name, "is %s, want %#02x", c.Val(), want)
		}
	}

	for bi, bt := range cat.BaseTypes() {
		for vi, v := range bt.Variants {
			check("Dt"+v.GoName, int64(catalog.DataTypeID(bi, vi)))
		}
	}

	for _, k := range cat.Containers() {
		check("Ct"+k.GoName(), int64(k.ID()))
	}

	return r
}
