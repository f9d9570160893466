package models

// StatisticItem is one entry of GET /servers/{server_id}/statistics.
// Values are strings, as in PowerDNS.
type StatisticItem struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// NewStatistic returns a StatisticItem.
func NewStatistic(name, value string) StatisticItem {
	return StatisticItem{Name: name, Type: "StatisticItem", Value: value}
}
