//go:build !mobile

// stub.go - 桌面构建时的占位文件
//
// 绑定代码 mobile.go 只在 -tags mobile 时编译，
// 这里保证 ./... 在桌面端也能正常构建。
package mobile

// Dummy 桌面构建时的空导出函数
func Dummy() {}
