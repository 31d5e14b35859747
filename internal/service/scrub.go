package service

import "strings"

// digitsOnly 剔除格式符，仅保留数字。
// CPF/CNPJ/CEP 在库内统一存为纯数字串，输入端接受带点、横线、斜杠的格式。
func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
