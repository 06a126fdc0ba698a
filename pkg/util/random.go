package util

import (
	"crypto/rand"
	"math/big"
)

const randomCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GetRandomString generates a random string of the given length
// GetRandomString 生成指定长度的随机字符串
func GetRandomString(length int) string {
	b := make([]byte, length)
	max := big.NewInt(int64(len(randomCharset)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			b[i] = randomCharset[0]
			continue
		}
		b[i] = randomCharset[n.Int64()]
	}
	return string(b)
}
