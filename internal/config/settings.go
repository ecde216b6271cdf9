package config

import (
	"fmt"

	"github.com/Veraticus/the-budget-must-flow/internal/advice"
	"github.com/Veraticus/the-budget-must-flow/internal/common"
	"github.com/Veraticus/the-budget-must-flow/internal/extractor"
	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Viper keys.
const (
	KeyRulesFile           = "rules.file"
	KeyProfile             = "profile"
	KeyWorkers             = "workers"
	KeySavingsTarget       = "advice.savings_target"
	KeyTransactionKeywords = "extract.transaction_keywords"
	KeyExclusionKeywords   = "extract.exclusion_keywords"
	KeyCreditKeywords      = "extract.credit_keywords"
	KeyLogLevel            = "logging.level"
	KeyLogFormat           = "logging.format"
)

// Settings is the resolved application configuration.
type Settings struct {
	SavingsTarget decimal.Decimal
	RulesFile     string        // empty means the built-in categories
	Profile       model.Profile // empty means ask or omit
	Extract       extractor.Config
	Workers       int // 0 means one per CPU
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeySavingsTarget, advice.DefaultSavingsTarget.String())
	v.SetDefault(KeyWorkers, 0)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
}

// Load resolves settings from v, which may hold values from a config file,
// BUDGET_ environment variables or bound flags.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		RulesFile: ExpandPath(v.GetString(KeyRulesFile)),
		Workers:   v.GetInt(KeyWorkers),
		Extract: extractor.Config{
			TransactionKeywords: v.GetStringSlice(KeyTransactionKeywords),
			ExclusionKeywords:   v.GetStringSlice(KeyExclusionKeywords),
			CreditKeywords:      v.GetStringSlice(KeyCreditKeywords),
		},
		SavingsTarget: advice.DefaultSavingsTarget,
	}

	if s.Workers < 0 {
		return Settings{}, fmt.Errorf("%w: %s must not be negative, got %d", common.ErrInvalidConfig, KeyWorkers, s.Workers)
	}

	if raw := v.GetString(KeyProfile); raw != "" {
		profile, err := model.ParseProfile(raw)
		if err != nil {
			return Settings{}, fmt.Errorf("%w: %s: %w", common.ErrInvalidConfig, KeyProfile, err)
		}
		s.Profile = profile
	}

	if raw := v.GetString(KeySavingsTarget); raw != "" {
		target, err := decimal.NewFromString(raw)
		if err != nil {
			return Settings{}, fmt.Errorf("%w: %s: %q is not a number", common.ErrInvalidConfig, KeySavingsTarget, raw)
		}
		if target.IsNegative() || target.GreaterThan(decimal.NewFromInt(1)) {
			return Settings{}, fmt.Errorf("%w: %s must be between 0 and 1, got %s", common.ErrInvalidConfig, KeySavingsTarget, raw)
		}
		s.SavingsTarget = target
	}

	return s, nil
}
