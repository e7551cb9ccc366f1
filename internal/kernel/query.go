package kernel

// Query is a lazy entity selection. It is evaluated by the kernel at the
// moment an operation consumes it, so a query built before a split still
// selects the post-split entities.
type Query interface {
	isQuery()
}

// QNothing selects no entities.
type QNothing struct{}

// QEntities selects fixed entity handles.
type QEntities struct {
	IDs []EntityID
}

// QCreatedBy selects entities of Type whose lineage includes Op or any
// operation beneath it.
type QCreatedBy struct {
	Op   OpID
	Type EntityType
}

// QOwnedByBody selects the entities of Type owned by the bodies of Of.
type QOwnedByBody struct {
	Of   Query
	Type EntityType
}

// QOwnerBody maps every entity of Of to its owning body.
type QOwnerBody struct {
	Of Query
}

// QEntityFilter keeps only entities of Type.
type QEntityFilter struct {
	Of   Query
	Type EntityType
}

// QIntersectsPlane keeps entities of Of that cross or touch Plane.
type QIntersectsPlane struct {
	Of    Query
	Plane Plane
}

// QCoincidesWithPlane keeps faces and edges of Of lying in Plane.
type QCoincidesWithPlane struct {
	Of    Query
	Plane Plane
}

// QUnion selects the union of its members, in order, without duplicates.
type QUnion struct {
	Of []Query
}

// QSubtraction selects From minus Minus.
type QSubtraction struct {
	From  Query
	Minus Query
}

func (QNothing) isQuery()            {}
func (QEntities) isQuery()           {}
func (QCreatedBy) isQuery()          {}
func (QOwnedByBody) isQuery()        {}
func (QOwnerBody) isQuery()          {}
func (QEntityFilter) isQuery()       {}
func (QIntersectsPlane) isQuery()    {}
func (QCoincidesWithPlane) isQuery() {}
func (QUnion) isQuery()              {}
func (QSubtraction) isQuery()        {}

func Nothing() Query { return QNothing{} }

func Entities(ids ...EntityID) Query { return QEntities{IDs: ids} }

func CreatedBy(op OpID, t EntityType) Query { return QCreatedBy{Op: op, Type: t} }

func OwnedByBody(q Query, t EntityType) Query { return QOwnedByBody{Of: q, Type: t} }

func OwnerBody(q Query) Query { return QOwnerBody{Of: q} }

func EntityFilter(q Query, t EntityType) Query { return QEntityFilter{Of: q, Type: t} }

func IntersectsPlane(q Query, p Plane) Query { return QIntersectsPlane{Of: q, Plane: p} }

func CoincidesWithPlane(q Query, p Plane) Query { return QCoincidesWithPlane{Of: q, Plane: p} }

func Union(qs ...Query) Query { return QUnion{Of: qs} }

func Subtraction(from, minus Query) Query { return QSubtraction{From: from, Minus: minus} }

// PlaneTool selects the sheet body of the construction plane created by op,
// ready to be used as a split or boolean tool.
func PlaneTool(op OpID) Query {
	return OwnerBody(EntityFilter(CreatedBy(op, Face), Face))
}
