package utils

import "github.com/gin-gonic/gin"

// JSONSuccess writes {success:true, data, ...extra}.
func JSONSuccess(c *gin.Context, code int, data interface{}, extra ...gin.H) {
	body := gin.H{"success": true, "data": data}
	for _, e := range extra {
		for k, v := range e {
			body[k] = v
		}
	}
	c.JSON(code, body)
}

// JSONError writes {success:false, error, message}. message is shown to users.
func JSONError(c *gin.Context, code int, kind, message string) {
	c.JSON(code, gin.H{"success": false, "error": kind, "message": message})
}
