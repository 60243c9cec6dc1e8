package summary

type SummaryResponse struct {
	Date           string `json:"date"`
	TotalEmployees int64  `json:"totalEmployees"`
	Present        int64  `json:"present"`
	Absent         int64  `json:"absent"`
}
