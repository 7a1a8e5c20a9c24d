package models

// Requests for the analysis HTTP endpoints. Defined in domain for consistency
// and reuse across handlers.

type AnalysisRequest struct {
	Ticker   string `query:"ticker" json:"ticker" validate:"required,min=1,max=16"`
	Period   string `query:"period" json:"period" default:"6mo" validate:"oneof=5d 1mo 3mo 6mo 1y 2y"`
	Interval string `query:"interval" json:"interval" default:"1d" validate:"oneof=1h 1d 1wk"`
	NewsMax  int    `query:"news_max" json:"news_max" default:"20" validate:"gte=0,lte=100"`
}

type SignalsRequest struct {
	Ticker   string `query:"ticker" json:"ticker" validate:"required,min=1,max=16"`
	Period   string `query:"period" json:"period" default:"6mo" validate:"oneof=5d 1mo 3mo 6mo 1y 2y"`
	Interval string `query:"interval" json:"interval" default:"1d" validate:"oneof=1h 1d 1wk"`
}

type IndicatorsRequest struct {
	Ticker   string `query:"ticker" json:"ticker" validate:"required,min=1,max=16"`
	Period   string `query:"period" json:"period" default:"6mo" validate:"oneof=5d 1mo 3mo 6mo 1y 2y"`
	Interval string `query:"interval" json:"interval" default:"1d" validate:"oneof=1h 1d 1wk"`
}

type VolumeRequest struct {
	Ticker   string `query:"ticker" json:"ticker" validate:"required,min=1,max=16"`
	Period   string `query:"period" json:"period" default:"3mo" validate:"oneof=1mo 3mo 6mo 1y"`
	Interval string `query:"interval" json:"interval" default:"1d" validate:"oneof=1d"`
}

type SentimentRequest struct {
	Ticker  string `query:"ticker" json:"ticker" validate:"required,min=1,max=16"`
	NewsMax int    `query:"news_max" json:"news_max" default:"20" validate:"gte=1,lte=100"`
}

type NewsImpactRequest struct {
	Ticker  string `query:"ticker" json:"ticker" validate:"required,min=1,max=16"`
	NewsMax int    `query:"news_max" json:"news_max" default:"20" validate:"gte=1,lte=100"`
}
