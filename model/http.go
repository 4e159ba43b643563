package model

type DetectRequestBody struct {
	Notes     []string `json:"notes"`
	Numbers   []int    `json:"numbers"`
	Transpose int      `json:"transpose"`
}

type DetectResponse struct {
	ID       string   `json:"id"`
	Chord    string   `json:"chord"`
	Root     string   `json:"root,omitempty"`
	Quality  string   `json:"quality"`
	Bass     string   `json:"bass,omitempty"`
	Inverted bool     `json:"inverted"`
	Score    float64  `json:"score"`
	Percent  int      `json:"percent"`
	Notes    []string `json:"notes"`
}

type TemplateResponse struct {
	Label     string `json:"label"`
	Intervals []int  `json:"intervals"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
