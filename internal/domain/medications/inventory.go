package medications

// Health mapea stock restante a estado de inventario y total de display.
// El total cae a DefaultMaxStock cuando un registro viejo no trae máximo.
func Health(m Medication) (StockStatus, int) {
	status := StockOK
	if m.Stock < LowStockThreshold {
		status = StockLow
	}

	total := m.MaxStock
	if total <= 0 {
		total = DefaultMaxStock
	}
	return status, total
}
