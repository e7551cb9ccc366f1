package polykernel

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/wingstruct/internal/kernel"
)

// ref addresses one entity. Sub-entity ids embed the cell and facet
// indices, so they go stale after any operation that rebuilds the body.
type ref struct {
	owner kernel.EntityID
	typ   kernel.EntityType
	cell  int
	i, j  int
}

func isSheet(owner kernel.EntityID) bool {
	return strings.HasPrefix(string(owner), "s")
}

func (r ref) id() kernel.EntityID {
	switch r.typ {
	case kernel.Face:
		if isSheet(r.owner) {
			return r.owner + "#f"
		}
		return kernel.EntityID(fmt.Sprintf("%s#c%df%d", r.owner, r.cell, r.i))
	case kernel.Edge:
		return kernel.EntityID(fmt.Sprintf("%s#c%de%d.%d", r.owner, r.cell, r.i, r.j))
	case kernel.Vertex:
		return kernel.EntityID(fmt.Sprintf("%s#c%dv%d", r.owner, r.cell, r.i))
	}
	return r.owner
}

func parseRef(id kernel.EntityID) (ref, error) {
	owner, rest, found := strings.Cut(string(id), "#")
	r := ref{owner: kernel.EntityID(owner), typ: kernel.Body}
	if !found {
		return r, nil
	}
	if isSheet(r.owner) {
		if rest != "f" {
			return ref{}, fmt.Errorf("malformed sheet entity %q: %w", id, kernel.ErrInvalidInput)
		}
		r.typ = kernel.Face
		return r, nil
	}
	var tail string
	if n, _ := fmt.Sscanf(rest, "c%d%s", &r.cell, &tail); n != 2 || tail == "" {
		return ref{}, fmt.Errorf("malformed entity %q: %w", id, kernel.ErrInvalidInput)
	}
	var n int
	switch tail[0] {
	case 'f':
		r.typ = kernel.Face
		n, _ = fmt.Sscanf(tail[1:], "%d", &r.i)
	case 'e':
		r.typ = kernel.Edge
		var a, b int
		n, _ = fmt.Sscanf(tail[1:], "%d.%d", &a, &b)
		r.i, r.j = a, b
		if n == 2 {
			n = 1
		} else {
			n = 0
		}
	case 'v':
		r.typ = kernel.Vertex
		n, _ = fmt.Sscanf(tail[1:], "%d", &r.i)
	}
	if n != 1 {
		return ref{}, fmt.Errorf("malformed entity %q: %w", id, kernel.ErrInvalidInput)
	}
	return r, nil
}

func (r ref) ownerRef() ref {
	return ref{owner: r.owner, typ: kernel.Body}
}
