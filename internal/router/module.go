package router

import "github.com/gin-gonic/gin"

// Module registers one feature's routes. Modules given to Registry.Add get
// the /api group; modules given to Registry.AddPage get the engine root,
// where the session gate applies.
type Module interface {
	Register(rg *gin.RouterGroup)
}

// ModuleFunc adapts a plain route function to Module.
type ModuleFunc func(rg *gin.RouterGroup)

func (f ModuleFunc) Register(rg *gin.RouterGroup) { f(rg) }
