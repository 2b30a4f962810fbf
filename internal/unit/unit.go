// Package unit 在链上最小单位（wei）与展示单位（ETH）之间换算。
//
// 所有换算基于 shopspring/decimal 与 math/big，任何环节都不经过 float64 运算，
// 因此对任意整数 wei 的换算都是精确的。
package unit

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/blues/crowdmint/internal/errs"
	"github.com/shopspring/decimal"
)

// Decimals 链上金额精度
const Decimals = 18

// Symbol 展示单位符号
const Symbol = "ETH"

// maxDisplayDigits uint256 换算为展示单位后整数部分的最大位数
const maxDisplayDigits = 78 - Decimals

// MaxBaseUnit 合约 uint256 可表示的最大值
var MaxBaseUnit = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// ParseDisplay 解析展示单位金额，只接受有限的非负十进制数；
// 数量级超出 uint256 或小于 1 wei 的值在任何缩放运算之前被拒绝
func ParseDisplay(amount string) (decimal.Decimal, error) {
	s := strings.TrimSpace(amount)
	if s == "" {
		return decimal.Zero, errs.InvalidAmount("amount is empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errs.InvalidAmount("amount %q is not a decimal number", amount)
	}
	if d.IsNegative() {
		return decimal.Zero, errs.InvalidAmount("amount %q is negative", amount)
	}
	if d.IsZero() {
		return decimal.Zero, nil
	}

	// 整数部分位数 = 有效数字位数 + 指数
	magnitude := int64(d.NumDigits()) + int64(d.Exponent())
	if magnitude > maxDisplayDigits {
		return decimal.Zero, errs.InvalidAmount("amount %q exceeds the supported range", amount)
	}
	if magnitude <= -Decimals {
		return decimal.Zero, errs.InvalidAmount("amount %q has more than %d decimal places", amount, Decimals)
	}
	return d, nil
}

// ToBaseUnit 展示单位转换为 wei
func ToBaseUnit(amount string) (*big.Int, error) {
	d, err := ParseDisplay(amount)
	if err != nil {
		return nil, err
	}
	shifted := d.Shift(Decimals)
	if !shifted.IsInteger() {
		return nil, errs.InvalidAmount("amount %q has more than %d decimal places", amount, Decimals)
	}
	wei := shifted.BigInt()
	if wei.Cmp(MaxBaseUnit) > 0 {
		return nil, errs.InvalidAmount("amount %q exceeds the supported range", amount)
	}
	return wei, nil
}

// ToBaseUnitString 展示单位转换为 wei 十进制字符串
func ToBaseUnitString(amount string) (string, error) {
	wei, err := ToBaseUnit(amount)
	if err != nil {
		return "", err
	}
	return wei.String(), nil
}

// ToBaseUnitFloat 数值输入转换为 wei
func ToBaseUnitFloat(amount float64) (*big.Int, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, errs.InvalidAmount("amount %v is not finite", amount)
	}
	return ToBaseUnit(strconv.FormatFloat(amount, 'f', -1, 64))
}

// ToDisplayUnit wei 十进制字符串转换为展示单位
func ToDisplayUnit(baseUnit string) (string, error) {
	s := strings.TrimSpace(baseUnit)
	wei, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return "", errs.InvalidAmount("base unit value %q is not an integer", baseUnit)
	}
	if wei.Sign() < 0 {
		return "", errs.InvalidAmount("base unit value %q is negative", baseUnit)
	}
	return FormatBase(wei), nil
}

// FormatBase 已校验的 wei 值转换为展示字符串，nil 视为 0
func FormatBase(wei *big.Int) string {
	return ToDecimal(wei).String()
}

// ToDecimal wei 转换为展示单位的 decimal
func ToDecimal(wei *big.Int) decimal.Decimal {
	if wei == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(wei, -Decimals)
}

// WithSymbol 附带单位符号的展示字符串
func WithSymbol(display string) string {
	return display + " " + Symbol
}
