package main

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

type User struct {
	Id        int64  `db:"id" json:"id"`
	Username  string `db:"username" json:"username"`
	Password  string `db:"password" json:"-"`
	Role      string `db:"role" json:"role"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

type LoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

func AuthRead(c *gin.Context) {
	ck, err := c.Request.Cookie("token")
	if err != nil {
		c.AbortWithStatus(401)
		return
	}
	_, err = parseToken(ck.Value)
	if err != nil {
		c.AbortWithStatus(401)
		return
	}
	c.Next()
}

func AuthWrite(c *gin.Context) {
	ck, err := c.Request.Cookie("token")
	if err != nil {
		c.AbortWithStatus(401)
		return
	}
	cl, err := parseToken(ck.Value)
	if err != nil {
		c.AbortWithStatus(401)
		return
	}
	c.Set("usr_id", cl.(jwt.MapClaims)["usr"])
	c.Next()
}

func createToken(u *User) string {
	token := jwt.New(jwt.SigningMethodHS256)
	token.Claims = jwt.MapClaims{
		"usr":  u.Username,
		"role": u.Role,
	}
	tokenString, err := token.SignedString([]byte(keySecret))
	if err != nil {
		return ""
	}
	return tokenString
}

func parseToken(t string) (jwt.Claims, error) {
	tk, err := jwt.Parse(t, func(token *jwt.Token) (interface{}, error) {
		return []byte(keySecret), nil
	})
	if err == nil && tk.Valid {
		return tk.Claims, nil
	}
	return nil, err
}

// Credentials are compared in plaintext against the users table. Known
// weakness carried over from the system this replaces.
func login(c *gin.Context) {
	req := LoginReq{}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username and password are required"})
		return
	}
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username and password are required"})
		return
	}

	usr := User{}
	err := DB.Get(&usr, "select * from users where username=? and password=?", req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	ck := http.Cookie{
		Name:     "token",
		Value:    createToken(&usr),
		HttpOnly: true,
	}
	if req.Remember {
		ck.Expires = time.Now().Add(365 * 24 * time.Hour)
	}
	http.SetCookie(c.Writer, &ck)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Login successful", "user": usr})
}

func logout(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "token",
		Value:    "",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})
}
