package config

import (
	"fmt"
	"strings"
	"time"

	btErrors "github.com/ducminhle1904/dca-backtester/internal/errors"
)

// Frequency is how often the regular investment recurs
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// ParseFrequency converts a string to a Frequency
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(strings.ToLower(strings.TrimSpace(s))) {
	case FrequencyDaily:
		return FrequencyDaily, nil
	case FrequencyWeekly:
		return FrequencyWeekly, nil
	case FrequencyMonthly:
		return FrequencyMonthly, nil
	}
	return "", fmt.Errorf("unknown frequency %q (use daily, weekly, monthly)", s)
}

// Plan limits and default values
const (
	DefaultAmount              = 100.0
	DefaultDipThreshold        = 0.0
	DefaultDipIncrease         = 100.0
	DefaultProfitTakingPct     = 20.0
	DefaultProfitTakingAmount  = 25.0
	DefaultRebalancingPct      = 50.0
	DefaultRebalancingAmount   = 50.0
	DefaultStopLossPct         = 0.0
	DefaultStopLossAmount      = 100.0
	DefaultSellCooldownDays    = 7
	DefaultReferencePeriodDays = 30

	MaxDipThreshold = 100.0
	MaxDipIncrease  = 500.0
	MaxSellAmount   = 100.0

	// DateFormat is the layout for plan window dates
	DateFormat = "2006-01-02"
)

// InvestmentPlan holds all configuration for a DCA backtest run.
// Percentage fields are expressed as whole percents (20 means 20%).
type InvestmentPlan struct {
	Symbol    string    `json:"symbol" yaml:"symbol"`
	Frequency Frequency `json:"frequency" yaml:"frequency"`
	Amount    float64   `json:"amount" yaml:"amount"`
	StartDate string    `json:"start_date" yaml:"start_date"`
	EndDate   string    `json:"end_date" yaml:"end_date"`

	// Dip buying parameters. A threshold of 0 disables dip buying.
	DipThreshold          float64 `json:"dip_threshold" yaml:"dip_threshold"`
	DipIncreasePercentage float64 `json:"dip_increase_percentage" yaml:"dip_increase_percentage"`

	// Selling strategy parameters
	EnableSells          bool    `json:"enable_sells" yaml:"enable_sells"`
	ProfitTakingPct      float64 `json:"profit_taking_threshold" yaml:"profit_taking_threshold"`
	ProfitTakingAmount   float64 `json:"profit_taking_amount" yaml:"profit_taking_amount"`
	RebalancingPct       float64 `json:"rebalancing_threshold" yaml:"rebalancing_threshold"`
	RebalancingAmount    float64 `json:"rebalancing_amount" yaml:"rebalancing_amount"`
	StopLossPct          float64 `json:"stop_loss_threshold" yaml:"stop_loss_threshold"`
	StopLossAmount       float64 `json:"stop_loss_amount" yaml:"stop_loss_amount"`
	SellCooldownDays     int     `json:"sell_cooldown_days" yaml:"sell_cooldown_days"`
	ReferencePeriodDays  int     `json:"reference_period_days" yaml:"reference_period_days"`
}

// NewDefaultPlan returns a plan with the default strategy parameters.
// Symbol, frequency and the date window still have to be filled in.
func NewDefaultPlan() *InvestmentPlan {
	return &InvestmentPlan{
		Frequency:             FrequencyWeekly,
		Amount:                DefaultAmount,
		DipThreshold:          DefaultDipThreshold,
		DipIncreasePercentage: DefaultDipIncrease,
		ProfitTakingPct:       DefaultProfitTakingPct,
		ProfitTakingAmount:    DefaultProfitTakingAmount,
		RebalancingPct:        DefaultRebalancingPct,
		RebalancingAmount:     DefaultRebalancingAmount,
		StopLossPct:           DefaultStopLossPct,
		StopLossAmount:        DefaultStopLossAmount,
		SellCooldownDays:      DefaultSellCooldownDays,
		ReferencePeriodDays:   DefaultReferencePeriodDays,
	}
}

// Window parses the plan's date range. Start must be strictly before end.
func (p *InvestmentPlan) Window() (time.Time, time.Time, error) {
	start, err := time.Parse(DateFormat, p.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, btErrors.Wrap(err, btErrors.KindPlan, "plan", "invalid start date")
	}
	end, err := time.Parse(DateFormat, p.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, btErrors.Wrap(err, btErrors.KindPlan, "plan", "invalid end date")
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, btErrors.New(btErrors.KindPlan, "plan",
			"start date %s must be before end date %s", p.StartDate, p.EndDate)
	}
	return start, end, nil
}

// Validate checks all plan fields before a simulation is allowed to start.
func (p *InvestmentPlan) Validate() error {
	if strings.TrimSpace(p.Symbol) == "" {
		return btErrors.New(btErrors.KindPlan, "plan", "symbol is required")
	}
	if _, err := ParseFrequency(string(p.Frequency)); err != nil {
		return btErrors.Wrap(err, btErrors.KindPlan, "plan", "invalid frequency")
	}
	if p.Amount <= 0 {
		return btErrors.New(btErrors.KindPlan, "plan", "amount must be positive, got %.2f", p.Amount)
	}
	if _, _, err := p.Window(); err != nil {
		return err
	}
	if p.DipThreshold < 0 || p.DipThreshold > MaxDipThreshold {
		return btErrors.New(btErrors.KindPlan, "plan",
			"dip threshold must be between 0 and %.0f, got %.2f", MaxDipThreshold, p.DipThreshold)
	}
	if p.DipIncreasePercentage < 0 || p.DipIncreasePercentage > MaxDipIncrease {
		return btErrors.New(btErrors.KindPlan, "plan",
			"dip increase must be between 0 and %.0f, got %.2f", MaxDipIncrease, p.DipIncreasePercentage)
	}
	if p.ProfitTakingPct < 0 {
		return btErrors.New(btErrors.KindPlan, "plan",
			"profit taking threshold must be non-negative, got %.2f", p.ProfitTakingPct)
	}
	if p.RebalancingPct < 0 {
		return btErrors.New(btErrors.KindPlan, "plan",
			"rebalancing threshold must be non-negative, got %.2f", p.RebalancingPct)
	}
	if p.StopLossPct < 0 {
		return btErrors.New(btErrors.KindPlan, "plan",
			"stop loss threshold must be non-negative, got %.2f", p.StopLossPct)
	}
	for name, amount := range map[string]float64{
		"profit taking amount": p.ProfitTakingAmount,
		"rebalancing amount":   p.RebalancingAmount,
		"stop loss amount":     p.StopLossAmount,
	} {
		if amount < 0 || amount > MaxSellAmount {
			return btErrors.New(btErrors.KindPlan, "plan",
				"%s must be between 0 and %.0f, got %.2f", name, MaxSellAmount, amount)
		}
	}
	if p.SellCooldownDays < 0 {
		return btErrors.New(btErrors.KindPlan, "plan",
			"sell cooldown must be non-negative, got %d", p.SellCooldownDays)
	}
	if p.ReferencePeriodDays < 1 {
		return btErrors.New(btErrors.KindPlan, "plan",
			"reference period must be at least 1 day, got %d", p.ReferencePeriodDays)
	}
	return nil
}
