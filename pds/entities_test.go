package pds

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// testPoint and testShape are written the way the generator emits items.
type testPoint struct {
	X    int32
	Tags []string
}

func (p *testPoint) Clear() { *p = testPoint{} }

func (p *testPoint) DeepCopy(src *testPoint) {
	p.X = src.X
	p.Tags = slices.Clone(src.Tags)
}

func (p *testPoint) Equals(o *testPoint) bool {
	return p.X == o.X && slices.Equal(p.Tags, o.Tags)
}

func (p *testPoint) Write(w *Writer) error {
	if err := WriteValue(w, "X", p.X); err != nil {
		return err
	}

	return WriteVector(w, "Tags", p.Tags)
}

func (p *testPoint) Read(r *Reader) error {
	if err := ReadValue(r, "X", &p.X); err != nil {
		return err
	}

	return ReadVector(r, "Tags", &p.Tags)
}

func (p *testPoint) Validate(v *Validator) error {
	if p.X < 0 {
		v.ReportError(InvalidValue, "X is negative: %d", p.X)
	}

	return nil
}

const testShapeTypeString = "Test.V1.Shape"

type testShape struct {
	Name   string
	Origin testPoint
	Corner *testPoint
	Points IdxVector[testPoint]
	Extra  OptionalVector[testPoint]
	Keys   []string
	Used   []string
}

func (*testShape) EntityTypeString() string { return testShapeTypeString }

func (s *testShape) Clear() { *s = testShape{} }

func (s *testShape) DeepCopy(src *testShape) {
	s.Name = src.Name
	s.Origin.DeepCopy(&src.Origin)
	s.Corner = CloneOptionalItem(src.Corner)
	s.Points = CloneIdxVector(src.Points, CloneItem[testPoint])
	s.Extra = CloneOptionalVector(src.Extra, CloneItem[testPoint])
	s.Keys = slices.Clone(src.Keys)
	s.Used = slices.Clone(src.Used)
}

func (s *testShape) Equals(o *testShape) bool {
	return s.Name == o.Name &&
		s.Origin.Equals(&o.Origin) &&
		EqualOptionalItem(s.Corner, o.Corner) &&
		EqualIdxVector(s.Points, o.Points, EqualItem[testPoint]) &&
		EqualOptionalVector(s.Extra, o.Extra, EqualItem[testPoint]) &&
		slices.Equal(s.Keys, o.Keys) &&
		slices.Equal(s.Used, o.Used)
}

func (s *testShape) Write(w *Writer) error {
	if err := WriteValue(w, "Name", s.Name); err != nil {
		return err
	}

	if err := WriteItem(w, "Origin", &s.Origin); err != nil {
		return err
	}

	if err := WriteOptionalItem(w, "Corner", s.Corner); err != nil {
		return err
	}

	if err := WriteItemIdxVector(w, "Points", s.Points); err != nil {
		return err
	}

	if err := WriteOptionalItemVector(w, "Extra", s.Extra); err != nil {
		return err
	}

	if err := WriteVector(w, "Keys", s.Keys); err != nil {
		return err
	}

	return WriteVector(w, "Used", s.Used)
}

func (s *testShape) Read(r *Reader) error {
	if err := ReadValue(r, "Name", &s.Name); err != nil {
		return err
	}

	if err := ReadItem(r, "Origin", &s.Origin); err != nil {
		return err
	}

	if err := ReadOptionalItem(r, "Corner", &s.Corner); err != nil {
		return err
	}

	if err := ReadItemIdxVector(r, "Points", &s.Points); err != nil {
		return err
	}

	if err := ReadOptionalItemVector(r, "Extra", &s.Extra); err != nil {
		return err
	}

	if err := ReadVector(r, "Keys", &s.Keys); err != nil {
		return err
	}

	return ReadVector(r, "Used", &s.Used)
}

func (s *testShape) Validate(v *Validator) error {
	if err := s.Origin.Validate(v); err != nil {
		return err
	}

	if err := ValidateOptionalItem(v, s.Corner); err != nil {
		return err
	}

	if err := ValidateItems(v, s.Points.Values); err != nil {
		return err
	}

	if err := ValidateIdxVector(v, "Points", s.Points); err != nil {
		return err
	}

	return ValidateAllKeysInTable(v, s.Used, s.Keys, "Keys")
}

func newTestShape() *testShape {
	return &testShape{
		Name:   "square",
		Origin: testPoint{X: 1, Tags: []string{"o"}},
		Corner: &testPoint{X: 4},
		Points: IdxVector[testPoint]{Values: []testPoint{{X: 2}, {X: 3}}, Index: []int32{1, 1, 0}},
		Extra:  SomeVector(testPoint{X: 9}),
		Keys:   []string{"a", "b"},
		Used:   []string{"b"},
	}
}

func testRegistry() *PackageRecord {
	slots := make([]*EntityRecord, 37)
	slots[EntityHash(testShapeTypeString)%37] = NewEntityRecord[testShape](testShapeTypeString)

	return NewPackageRecord("Test", NewEntityTable(slots))
}

func TestEntityHash_FNV1a(t *testing.T) {
	hash := uint64(0xcbf29ce484222325)
	for _, b := range []byte(testShapeTypeString) {
		hash ^= uint64(b)
		hash *= 0x100000001b3
	}

	assert.Equal(t, hash, EntityHash(testShapeTypeString))
	assert.Equal(t, uint64(0xcbf29ce484222325), EntityHash(""))
}

func TestItems_RoundTrip(t *testing.T) {
	s := newTestShape()

	w := NewWriter()
	require.NoError(t, WriteItem(w, "shape", s))

	var got testShape
	require.NoError(t, ReadItem(NewReader(w.Bytes()), "shape", &got))
	assert.True(t, s.Equals(&got))

	var cp testShape
	cp.DeepCopy(s)
	assert.True(t, cp.Equals(s))

	cp.Points.Values[0].X = 100
	assert.False(t, cp.Equals(s), "deep copy shares no storage")
}

func TestItems_NullOptional(t *testing.T) {
	s := newTestShape()
	s.Corner = nil
	s.Extra.Reset()

	w := NewWriter()
	require.NoError(t, s.Write(w))

	var got testShape
	require.NoError(t, got.Read(NewReader(w.Bytes())))
	assert.Nil(t, got.Corner)
	assert.False(t, got.Extra.HasValue())
	assert.True(t, s.Equals(&got))
}

func TestPackageRecord(t *testing.T) {
	pkg := testRegistry()

	e, err := pkg.New(testShapeTypeString)
	require.NoError(t, err)
	assert.Equal(t, testShapeTypeString, e.EntityTypeString())

	_, err = pkg.New("Test.V1.Missing")
	require.ErrorIs(t, err, ErrUnknownEntity)

	s := newTestShape()

	w := NewWriter()
	require.NoError(t, pkg.Write(s, w))
	require.NoError(t, pkg.Read(e, NewReader(w.Bytes())))

	eq, err := pkg.Equals(s, e)
	require.NoError(t, err)
	assert.True(t, eq)

	v := NewValidator()
	require.NoError(t, pkg.Validate(e, v))
	assert.True(t, v.Valid())

	require.NoError(t, pkg.Clear(e))
	eq, err = pkg.Equals(s, e)
	require.NoError(t, err)
	assert.False(t, eq)

	require.ErrorIs(t, pkg.Write(nil, w), ErrNilData)
	require.ErrorIs(t, pkg.Write((*testShape)(nil), w), ErrNilData)
}

func TestPackageRecord_LogsUnknownType(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	pkg := testRegistry()

	_, err := pkg.New("Test.V1.Missing")
	require.ErrorIs(t, err, ErrUnknownEntity)

	entries := logs.FilterMessage("unknown entity type").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "new", fields["op"])
	assert.Equal(t, "Test.V1.Missing", fields["type"])
	assert.Equal(t, pkg.Name(), fields["package"])
}

func TestValidator_Reports(t *testing.T) {
	s := newTestShape()
	s.Origin.X = -1
	s.Points.Index = append(s.Points.Index, 5)
	s.Used = append(s.Used, "zz")

	v := NewValidator()
	require.NoError(t, s.Validate(v))
	assert.Equal(t, 3, v.ErrorCount())
	assert.Equal(t, InvalidValue|MissingObject, v.ErrorIDs())
	assert.Equal(t, "MissingObject|InvalidValue", v.ErrorIDs().String())
	assert.Len(t, v.Messages(), 3)

	v.Reset()
	assert.True(t, v.Valid())
}

func TestEntityHandler(t *testing.T) {
	dir := t.TempDir()

	h, err := NewEntityHandler(dir, testRegistry())
	require.NoError(t, err)

	s := newTestShape()
	ref, err := h.AddEntity(s)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, ref.String()+".dat"))
	assert.True(t, h.IsEntityLoaded(ref))

	again, err := h.AddEntity(newTestShape())
	require.NoError(t, err)
	assert.Equal(t, ref, again, "equal content yields the same reference")

	h.UnloadEntity(ref)
	assert.False(t, h.IsEntityLoaded(ref))

	e, err := h.LoadEntity(ref)
	require.NoError(t, err)

	got, ok := e.(*testShape)
	require.True(t, ok)
	assert.True(t, s.Equals(got))

	cached, ok := h.GetLoadedEntity(ref)
	require.True(t, ok)
	assert.Same(t, e, cached)
}

func TestEntityHandler_CacheHoldsStoredValue(t *testing.T) {
	h, err := NewEntityHandler(t.TempDir(), testRegistry())
	require.NoError(t, err)

	s := newTestShape()
	ref, err := h.AddEntity(s)
	require.NoError(t, err)

	s.Name = "changed"
	s.Used = nil

	cached, ok := h.GetLoadedEntity(ref)
	require.True(t, ok)

	got, ok := cached.(*testShape)
	require.True(t, ok)
	assert.NotSame(t, s, got)
	assert.True(t, newTestShape().Equals(got), "the cache keeps the stored value")
}

func TestEntityHandler_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewEntityHandler(dir)
	require.ErrorIs(t, err, ErrNoPackages)

	_, err = NewEntityHandler(filepath.Join(dir, "missing"), testRegistry())
	require.Error(t, err)

	h, err := NewEntityHandler(dir, testRegistry())
	require.NoError(t, err)

	bad := newTestShape()
	bad.Used = []string{"nope"}
	_, err = h.AddEntity(bad)
	require.ErrorIs(t, err, ErrInvalidEntity)

	ref, err := h.AddEntity(newTestShape())
	require.NoError(t, err)
	h.UnloadEntity(ref)

	path := filepath.Join(dir, ref.String()+".dat")
	require.NoError(t, os.Chmod(path, 0o644))
	require.NoError(t, os.WriteFile(path, []byte("tampered"), 0o644))

	_, err = h.LoadEntity(ref)
	require.ErrorIs(t, err, ErrHashMismatch)
}

func TestEntityHandler_AddEntities(t *testing.T) {
	h, err := NewEntityHandler(t.TempDir(), testRegistry())
	require.NoError(t, err)

	a, b := newTestShape(), newTestShape()
	b.Name = "other"

	refs, err := h.AddEntities(context.Background(), a, b)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.NotEqual(t, refs[0], refs[1])
}
