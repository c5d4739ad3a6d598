package cmn

// Version 构建版本，可通过 -ldflags "-X LifeKLine/cmn.Version=..." 覆盖
var Version = "1.0.0"
