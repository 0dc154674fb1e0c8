package model

// DataError reports price data that cannot support the analysis, such as too
// few rows or no company meeting the selection criteria.
type DataError struct {
	Msg string
}

func (e *DataError) Error() string { return e.Msg }

// SourceError reports that the price data could not be obtained at all.
type SourceError struct {
	Msg string
	Err error
}

func (e *SourceError) Error() string { return e.Msg }

func (e *SourceError) Unwrap() error { return e.Err }
