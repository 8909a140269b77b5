package models

// ConvertRequest is the query of GET /.
type ConvertRequest struct {
	From   string `query:"from" validate:"required,max=32"`
	To     string `query:"to" validate:"required,max=32"`
	Amount string `query:"amount" validate:"max=32"`
}

// HistoryRequest is the query of GET /history.
type HistoryRequest struct {
	From  string `query:"from" validate:"required,max=32"`
	To    string `query:"to" validate:"required,max=32"`
	Range string `query:"range" default:"过去10年" validate:"max=32"`
}
