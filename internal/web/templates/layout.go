// Package templates renders the application's HTML pages as templ
// components. Every dynamic value goes through templ's escaping before it
// reaches the page.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

const pageHead = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s - Papelaria Flor de Maria</title>
<style>
body { font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #f5f5f5; }
h1 { color: #333; text-align: center; }
h2 { color: #333; }
.container { max-width: 1200px; margin: 0 auto; }
table { width: 100%%; border-collapse: collapse; margin-top: 20px; background-color: white; box-shadow: 0 0 10px rgba(0,0,0,0.1); }
th, td { padding: 12px 15px; text-align: left; border-bottom: 1px solid #ddd; }
th { background-color: #f8f9fa; font-weight: bold; }
tr:hover { background-color: #f1f1f1; }
.nav { display: flex; justify-content: space-between; margin-bottom: 20px; }
.nav a { padding: 10px 15px; background-color: #007bff; color: white; text-decoration: none; border-radius: 3px; }
.actions { display: flex; gap: 10px; }
.transaction-form { display: flex; gap: 5px; align-items: center; }
input[type="number"] { width: 60px; padding: 5px; }
button { padding: 5px 10px; cursor: pointer; background-color: #4CAF50; color: white; border: none; border-radius: 3px; }
button.remove { background-color: #f44336; }
.add { color: green; font-weight: bold; }
.remove { color: red; font-weight: bold; }
.search { margin-bottom: 20px; }
.search input { padding: 8px; width: 300px; }
.add-product { margin-bottom: 20px; }
.add-product a { padding: 10px 15px; background-color: #4CAF50; color: white; text-decoration: none; border-radius: 3px; display: inline-block; }
.edit-delete { display: flex; gap: 5px; }
.edit-delete a { padding: 5px 10px; background-color: #FFC107; color: white; text-decoration: none; border-radius: 3px; }
.edit-delete form button { background-color: #f44336; }
.form-card { max-width: 600px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 5px; box-shadow: 0 0 10px rgba(0,0,0,0.1); }
.form-group { margin-bottom: 15px; }
.form-group label { display: block; margin-bottom: 5px; font-weight: bold; }
.form-group input { width: 100%%; padding: 8px; border: 1px solid #ddd; border-radius: 3px; box-sizing: border-box; }
</style>
</head>
<body>
<div class="container">
<h1>%s</h1>
`

const pageFoot = `</div>
</body>
</html>
`

const navHTML = `<div class="nav">
<a href="/">Estoque</a>
<a href="/transactions">Histórico de Transações</a>
<a href="/dashboard">Dashboard</a>
</div>
`

// layout wraps body in the shared page chrome.
func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		escaped := templ.EscapeString(title)
		if _, err := fmt.Fprintf(w, pageHead, escaped, escaped); err != nil {
			return err
		}
		if _, err := io.WriteString(w, navHTML); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, pageFoot)
		return err
	})
}
