package chain

// 模型温度默认区间
const (
	DefaultTemperatureMin = 0.8
	DefaultTemperatureMax = 1.2
)

// NormalizeTemperature 将 1-9 的创造度线性映射到 [lower, upper]
// t 为 nil 时取区间中点，越界输入被截断
func NormalizeTemperature(t *int, lower, upper float64) float64 {
	if lower == 0 && upper == 0 {
		lower, upper = DefaultTemperatureMin, DefaultTemperatureMax
	}
	if t == nil {
		return (lower + upper) / 2
	}
	return mapRange(float64(*t), 1, 9, lower, upper)
}

func mapRange(v, inMin, inMax, outMin, outMax float64) float64 {
	mapped := (v-inMin)/(inMax-inMin)*(outMax-outMin) + outMin
	if mapped < outMin {
		return outMin
	}
	if mapped > outMax {
		return outMax
	}
	return mapped
}
