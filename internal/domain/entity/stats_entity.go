package entity

// DashboardStats are the counters on the dashboard landing view.
type DashboardStats struct {
	Websites struct {
		Total       int `json:"total"`
		Active      int `json:"active"`
		Maintenance int `json:"maintenance"`
	} `json:"websites"`
	Credentials struct {
		Total    int `json:"total"`
		FTP      int `json:"ftp"`
		Database int `json:"database"`
	} `json:"credentials"`
	Domains struct {
		Total   int `json:"total"`
		Active  int `json:"active"`
		Expired int `json:"expired"`
	} `json:"domains"`
	Servers struct {
		Total   int `json:"total"`
		Online  int `json:"online"`
		Offline int `json:"offline"`
	} `json:"servers"`
}
