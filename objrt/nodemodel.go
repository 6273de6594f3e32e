package objrt

// Classes of the foreign node model. JNode is the base of every tree node
// class; Node is the foreign view of a node held in engine storage.
const (
	ClassNode    = "tony/node/JNode"
	ClassNull    = "tony/node/JNull"
	ClassString  = "tony/node/JString"
	ClassInt     = "tony/node/JInt"
	ClassUint    = "tony/node/JUint"
	ClassFloat   = "tony/node/JFloat"
	ClassBool    = "tony/node/JBool"
	ClassArray   = "tony/node/JArray"
	ClassObject  = "tony/node/JObject"
	ClassNodeExt = "tony/node/Node"
)

// Members of the node model.
const (
	MethodSize    = "size"
	MethodKeyAt   = "keyAt"
	MethodValueAt = "valueAt"
	MethodAdd     = "add"
	MethodStr     = "str"
	MethodNum     = "num"
	MethodValue   = "value"
	MethodGet     = "get"

	FieldCtx    = "ctx"
	FieldHandle = "handle"
)

// Member signatures of the node model.
const (
	SigSize      Signature = "()I"
	SigKeyAt     Signature = "(I)Lstring;"
	SigValueAt   Signature = "(I)L" + ClassNode + ";"
	SigArrayAdd  Signature = "(L" + ClassNode + ";)V"
	SigObjectAdd Signature = "(Lstring;L" + ClassNode + ";)V"
	SigStr       Signature = "()Lstring;"
	SigIntNum    Signature = "()J"
	SigFloatNum  Signature = "()D"
	SigBoolValue Signature = "()Z"
	SigUintGet   Signature = "()J"
	SigLongField Signature = "J"

	CtorEmpty    Signature = "()V"
	CtorString   Signature = "(Lstring;)V"
	CtorLong     Signature = "(J)V"
	CtorDouble   Signature = "(D)V"
	CtorBool     Signature = "(Z)V"
	CtorCapacity Signature = "(I)V"
	CtorNodeExt  Signature = "(JJ)V"
)
