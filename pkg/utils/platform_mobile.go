//go:build mobile

package utils

// IsMobile 移动端构建（-tags mobile）总是返回 true
// 移动端没有键盘快捷键，App 只处理触摸。
func IsMobile() bool {
	return true
}
