package domain

// ShortAddress renders "EPjFWd…TDt1v" for log lines and bundle ids.
// Addresses shorter than the window are returned as-is.
func ShortAddress(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}
