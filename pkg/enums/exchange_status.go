package enums

// ExchangeStatus tracks an exchange request through manual review.
type ExchangeStatus string

const (
	ExchangeStatusReceived ExchangeStatus = "received"
	ExchangeStatusQuoted   ExchangeStatus = "quoted"
	ExchangeStatusClosed   ExchangeStatus = "closed"
)

func (s ExchangeStatus) String() string {
	return string(s)
}

func (s ExchangeStatus) IsValid() bool {
	switch s {
	case ExchangeStatusReceived, ExchangeStatusQuoted, ExchangeStatusClosed:
		return true
	}
	return false
}
