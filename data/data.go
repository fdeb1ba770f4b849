// Package data 嵌入随程序发布的数据文件
//
// 桌面端、终端和移动端入口都从这里取数据，
// 不再各自声明 //go:embed（移动端也不用再复制 data/ 目录）。
package data

import "embed"

// Files data/ 目录的内容，根目录下直接是 fireworks.yaml
//
//go:embed fireworks.yaml
var Files embed.FS
