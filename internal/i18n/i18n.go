// Package i18n renders user-facing text in English or Chinese.
package i18n

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"

	"github.com/mamadbah2/buffercalc/internal/domain/models"
)

// Lang is a supported display language.
type Lang string

const (
	English Lang = "en"
	Chinese Lang = "zh"
)

var (
	supported = []language.Tag{language.English, language.Chinese}
	matcher   = language.NewMatcher(supported)
)

// Match picks the best supported language for an Accept-Language header,
// falling back when the header is empty or unparsable.
func Match(acceptLanguage string, fallback Lang) Lang {
	if acceptLanguage == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	return fromTag(supported[idx])
}

// Parse reads an explicit language code such as "zh-CN" or "en".
func Parse(code string, fallback Lang) Lang {
	if code == "" {
		return fallback
	}
	tag, err := language.Parse(code)
	if err != nil {
		return fallback
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return fallback
	}
	return fromTag(supported[idx])
}

func fromTag(tag language.Tag) Lang {
	if tag == language.Chinese {
		return Chinese
	}
	return English
}

// Code returns a stable machine-readable code for an error.
func Code(err error) string {
	switch {
	case errors.Is(err, models.ErrParse):
		return "invalid_volume"
	case errors.Is(err, models.ErrInvalidVolume):
		return "invalid_volume"
	case errors.Is(err, models.ErrEmptyRecipe):
		return "empty_recipe"
	case errors.Is(err, models.ErrUnitMismatch):
		return "unit_mismatch"
	case errors.Is(err, models.ErrUnsupportedUnit):
		return "unsupported_unit"
	case errors.Is(err, models.ErrUnknownReagent):
		return "unknown_reagent"
	case errors.Is(err, models.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, models.ErrExport):
		return "export_failed"
	default:
		return "internal"
	}
}

// Message renders err for display. Every message names the offending token,
// unit or reagent when the error carries one.
func Message(err error, lang Lang) string {
	if err == nil {
		return ""
	}
	zh := lang == Chinese

	var (
		parseErr    *models.ParseError
		mismatch    *models.UnitMismatchError
		unsupported *models.UnsupportedUnitError
		unknown     *models.UnknownReagentError
		outOfRange  *models.OutOfRangeError
		exportErr   *models.ExportError
	)

	switch {
	case errors.As(err, &parseErr):
		if zh {
			return fmt.Sprintf("体积格式错误: %q，请使用如: 1 L, 500 mL, 1000 μL", parseErr.Text)
		}
		return fmt.Sprintf("Invalid volume %q. Use e.g. 1 L, 500 mL, 1000 μL.", parseErr.Text)
	case errors.Is(err, models.ErrInvalidVolume):
		if zh {
			return "目标体积必须大于 0"
		}
		return "The target volume must be greater than 0."
	case errors.Is(err, models.ErrEmptyRecipe):
		if zh {
			return "未能解析出有效配方，请检查格式，如: 20 mM Tris, 150 mM NaCl"
		}
		return "No components found. Use e.g. 20 mM Tris, 150 mM NaCl."
	case errors.As(err, &mismatch):
		if zh {
			return fmt.Sprintf("%s 的浓度单位不匹配: 请求 %s，储液为 %s", mismatch.Reagent, mismatch.Requested, mismatch.Stock)
		}
		return fmt.Sprintf("Unit mismatch for %s: requested %s but the stock is in %s.", mismatch.Reagent, mismatch.Requested, mismatch.Stock)
	case errors.As(err, &unsupported):
		if unsupported.Reagent == "" {
			if zh {
				return fmt.Sprintf("不支持的浓度单位: %s", unsupported.Unit)
			}
			return fmt.Sprintf("Unsupported concentration unit %s.", unsupported.Unit)
		}
		if zh {
			return fmt.Sprintf("不支持的固体浓度单位: %s (%s)，请使用 M、mM 或 μM", unsupported.Unit, unsupported.Reagent)
		}
		return fmt.Sprintf("Unsupported unit %s for solid %s; use M, mM or μM.", unsupported.Unit, unsupported.Reagent)
	case errors.As(err, &unknown):
		if zh {
			return fmt.Sprintf("未知试剂: %s", unknown.Reagent)
		}
		return fmt.Sprintf("Unknown reagent %s.", unknown.Reagent)
	case errors.As(err, &outOfRange):
		if zh {
			return fmt.Sprintf("%s 的用量超出可计算范围，请检查浓度和体积", outOfRange.Reagent)
		}
		return fmt.Sprintf("The amount of %s is too large to compute; check its concentration and the volume.", outOfRange.Reagent)
	case errors.As(err, &exportErr):
		if zh {
			return fmt.Sprintf("Excel 生成失败: %v", exportErr.Err)
		}
		return fmt.Sprintf("Worksheet export failed: %v", exportErr.Err)
	default:
		if zh {
			return "内部错误，请稍后重试"
		}
		return "Internal error, please try again."
	}
}

// WaterName is the display name of the make-up water row.
func WaterName(lang Lang) string {
	if lang == Chinese {
		return "水"
	}
	return models.WaterName
}

// Headers are the column titles of a rendered worksheet.
func Headers(lang Lang) [4]string {
	if lang == Chinese {
		return [4]string{"组分", "目标浓度", "体积 (mL)", "质量 (g)"}
	}
	return [4]string{"Component", "Target", "Volume (mL)", "Mass (g)"}
}

// Help describes the chat commands.
func Help(lang Lang) string {
	if lang == Chinese {
		return "试剂配方计算器\n/calc <体积>: <配方>  例如 /calc 1 L: 20 mM Tris, 150 mM NaCl\n/catalog  查看储液和固体试剂\n/help  显示帮助"
	}
	return "Buffer calculator\n/calc <volume>: <recipe>  e.g. /calc 1 L: 20 mM Tris, 150 mM NaCl\n/catalog  list stock solutions and solids\n/help  show this message"
}

// CalcUsage explains the /calc argument format.
func CalcUsage(lang Lang) string {
	if lang == Chinese {
		return "格式: /calc <体积>: <配方>，例如 /calc 500 mL: 1 mM DTT"
	}
	return "Usage: /calc <volume>: <recipe>, e.g. /calc 500 mL: 1 mM DTT"
}
