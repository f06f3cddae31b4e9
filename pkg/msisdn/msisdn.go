// pkg/msisdn/msisdn.go
package msisdn

import (
	"regexp"
	"strings"
)

// 尼日利亚国家码
const CountryCode = "234"

const (
	CarrierMTN    = "MTN"
	CarrierAirtel = "Airtel"
)

var (
	mtnPrefixes    = []string{"803", "806", "703", "704", "706", "810", "813", "814", "816", "903", "906", "913"}
	airtelPrefixes = []string{"802", "808", "708", "701", "812", "902", "907", "901", "904", "911", "912"}

	cleanPattern = regexp.MustCompile(`[\s\-\(\)]+`)
	digitPattern = regexp.MustCompile(`^\d{10,11}$`)
)

// Normalize 将手机号归一化为带国家码的MSISDN，空串原样返回
func Normalize(input string) string {
	if input == "" {
		return ""
	}

	m := cleanPattern.ReplaceAllString(strings.TrimSpace(input), "")
	m = strings.TrimPrefix(m, "+")

	// 本地11位 0xxxxxxxxxx → 234xxxxxxxxxx
	if strings.HasPrefix(m, "0") && len(m) == 11 {
		return CountryCode + m[1:]
	}

	// 已带国家码
	if strings.HasPrefix(m, CountryCode) {
		return m
	}

	// 10~11位裸号码补国家码
	if digitPattern.MatchString(m) {
		return CountryCode + strings.TrimPrefix(m, "0")
	}

	// 宽容兜底，返回清洗后的串
	return m
}

// DetectCarrier 根据本地号段识别运营商，未命中返回空串
func DetectCarrier(m string) string {
	local := strings.TrimPrefix(m, CountryCode)

	for _, p := range mtnPrefixes {
		if strings.HasPrefix(local, p) {
			return CarrierMTN
		}
	}
	for _, p := range airtelPrefixes {
		if strings.HasPrefix(local, p) {
			return CarrierAirtel
		}
	}
	return ""
}

// MTNPrefixes 返回MTN号段副本
func MTNPrefixes() []string {
	return append([]string(nil), mtnPrefixes...)
}

// AirtelPrefixes 返回Airtel号段副本
func AirtelPrefixes() []string {
	return append([]string(nil), airtelPrefixes...)
}
