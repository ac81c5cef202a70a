package domain

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type IndicatorReport struct {
	Indicator    string `json:"indicator"`
	Pages        int    `json:"pages"`
	Records      int    `json:"records"`
	Observations int    `json:"observations"`
	Path         string `json:"path,omitempty"`
	Error        string `json:"error,omitempty"`
}
