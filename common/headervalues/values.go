package headervalues

const (
	ApplicationJson = "application/json"
)
