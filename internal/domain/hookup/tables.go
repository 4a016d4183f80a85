package hookup

const (
	TableNodes       = "nodes"
	TableBusses      = "busses"
	TableNets        = "nets"
	TableConnections = "connections"
	TablePinouts     = "pinouts"
)
