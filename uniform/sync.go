package uniform

import "fmt"

// copyKind tags the specialized copy rule applied to one block field.
type copyKind int

const (
	copyScalar copyKind = iota // 1 component: scalars and sampler handles
	copyVector                 // 2..4 contiguous components
	copyMatrix                 // n*n contiguous components, source element order
)

// copyOp is one instruction of a generated sync procedure: resolve name in
// the value source and write count components starting at element elem of
// the packed buffer (elements are float32, 4 bytes each).
type copyOp struct {
	name  string
	kind  copyKind
	elem  int
	count int
}

// SyncProc is a specialized procedure for one block shape. Invoking it
// copies the current value of every field into buf at the offsets planned
// for that shape, then hands buf to the uploader exactly once.
//
// buf must hold BlockLayout.Size/4 elements and is borrowed for the
// duration of the call only. Fields with no entry in values are skipped
// silently, leaving their bytes untouched. The cached source is reserved
// for incremental sync and may be nil; the current procedure rewrites every
// present field on every invocation.
type SyncProc func(values ValueSource, cached ValueSource, buf []float32, uploader Uploader)

// BuildSyncProc generates the specialized sync procedure for a planned
// block layout. The procedure depends only on the block's shape (ordered
// names and types), so two blocks with identical shapes may share one
// procedure; Cache exploits this.
//
// Parameters:
//   - layout: the planned layout whose entries drive the generated copies
//
// Returns:
//   - SyncProc: the generated procedure
//   - error: ErrArrayUniform or ErrUnknownType; no partial procedure is returned
func BuildSyncProc(layout BlockLayout) (SyncProc, error) {
	ops := make([]copyOp, 0, len(layout.Entries))
	for _, e := range layout.Entries {
		u := e.Uniform
		if u.ArraySize > 1 {
			return nil, fmt.Errorf("uniform %q has arraySize %d: %w", u.Name, u.ArraySize, ErrArrayUniform)
		}
		count, ok := u.Type.Components()
		if !ok {
			return nil, fmt.Errorf("uniform %q: %w (%s)", u.Name, ErrUnknownType, u.Type)
		}

		kind := copyScalar
		switch {
		case u.Type.IsMatrix():
			kind = copyMatrix
		case u.Type.IsVector():
			kind = copyVector
		}

		ops = append(ops, copyOp{
			name:  u.Name,
			kind:  kind,
			elem:  e.Offset / 4,
			count: count,
		})
	}

	return func(values ValueSource, _ ValueSource, buf []float32, uploader Uploader) {
		for _, op := range ops {
			v, ok := values.Lookup(op.name)
			if !ok {
				continue
			}
			switch op.kind {
			case copyScalar:
				if len(v) > 0 {
					buf[op.elem] = v[0]
				}
			case copyVector, copyMatrix:
				copy(buf[op.elem:op.elem+op.count], v)
			}
		}
		uploader.Upload(buf)
	}, nil
}
