// Package web 内嵌的前端页面
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

//go:embed dist/*
var staticFS embed.FS

// MountID index.html 中应用挂载点的 id
const MountID = "app"

// DistFS 去掉 dist 前缀后的静态文件
func DistFS() fs.FS {
	distFS, err := fs.Sub(staticFS, "dist")
	if err != nil {
		panic(err)
	}
	return distFS
}

// Handler 提供静态文件，不存在的路径和目录都回落到 index.html
func Handler() http.Handler {
	distFS := DistFS()
	fileServer := http.FileServer(http.FS(distFS))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if name != "" {
			if info, err := fs.Stat(distFS, name); err != nil || info.IsDir() {
				r.URL.Path = "/"
			}
		}
		fileServer.ServeHTTP(w, r)
	})
}
