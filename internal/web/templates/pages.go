package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/gnoronha42/flor-de-maria-supply/internal/inventory"
)

// Inventory is the main stock listing page.
func Inventory(products []inventory.Product, query string) templ.Component {
	return layout("Controle de Estoque", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeSearchBox(w, query); err != nil {
			return err
		}
		if _, err := io.WriteString(w,
			`<div class="add-product"><a href="/add_product">Adicionar Novo Produto</a></div>`+"\n",
		); err != nil {
			return err
		}
		return writeProductsTable(w, products)
	}))
}

// SearchResults is the stock listing filtered by a search query.
func SearchResults(products []inventory.Product, query string) templ.Component {
	return layout("Resultados da Busca", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeSearchBox(w, query); err != nil {
			return err
		}
		if len(products) == 0 {
			_, err := fmt.Fprintf(w, "<p>Nenhum produto encontrado para %q.</p>\n", templ.EscapeString(query))
			return err
		}
		return writeProductsTable(w, products)
	}))
}

// Transactions is the stock movement history page.
func Transactions(txs []inventory.Transaction) templ.Component {
	return layout("Histórico de Transações", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<table>
<thead><tr><th>ID</th><th>Produto</th><th>Tipo</th><th>Quantidade</th><th>Data/Hora</th></tr></thead>
<tbody>
`); err != nil {
			return err
		}
		for _, tx := range txs {
			label := "Saída"
			if tx.Type == inventory.TransactionAdd {
				label = "Entrada"
			}
			if _, err := fmt.Fprintf(w,
				`<tr><td>%d</td><td>%s</td><td class="%s">%s</td><td>%d</td><td>%s</td></tr>`+"\n",
				tx.ID,
				templ.EscapeString(tx.ProductName),
				templ.EscapeString(string(tx.Type)),
				label,
				tx.Quantity,
				tx.Date.Format("02/01/2006 15:04"),
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</tbody>\n</table>\n")
		return err
	}))
}

// Dashboard is the stock statistics page.
func Dashboard(stats inventory.DashboardStats) templ.Component {
	return layout("Dashboard", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			"<p>Total de produtos: <strong>%d</strong></p>\n<p>Valor total do estoque: <strong>R$ %.2f</strong></p>\n",
			stats.TotalProducts, stats.TotalValue,
		); err != nil {
			return err
		}

		if _, err := io.WriteString(w, "<h2>Estoque baixo</h2>\n"); err != nil {
			return err
		}
		if len(stats.LowStock) == 0 {
			if _, err := io.WriteString(w, "<p>Nenhum produto com estoque baixo.</p>\n"); err != nil {
				return err
			}
		} else if err := writeSimpleProductsTable(w, stats.LowStock); err != nil {
			return err
		}

		if _, err := io.WriteString(w, "<h2>Produtos mais caros</h2>\n"); err != nil {
			return err
		}
		if err := writeSimpleProductsTable(w, stats.MostExpensive); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<h2>Transações recentes</h2>
<table>
<thead><tr><th>ID</th><th>Produto</th><th>Tipo</th></tr></thead>
<tbody>
`); err != nil {
			return err
		}
		for _, tx := range stats.RecentTransactions {
			label := "Saída"
			if tx.Type == inventory.TransactionAdd {
				label = "Entrada"
			}
			if _, err := fmt.Fprintf(w,
				`<tr><td>%d</td><td>%s</td><td class="%s">%s</td></tr>`+"\n",
				tx.ID, templ.EscapeString(tx.ProductName), templ.EscapeString(string(tx.Type)), label,
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</tbody>\n</table>\n")
		return err
	}))
}

// ProductForm renders the add form when p is nil and the edit form
// otherwise.
func ProductForm(p *inventory.Product) templ.Component {
	title := "Adicionar Novo Produto"
	action := "/add_product"
	submit := "Adicionar Produto"
	name, quantity, price := "", 0, 0.0
	if p != nil {
		title = "Editar Produto"
		action = fmt.Sprintf("/edit_product/%d", p.ID)
		submit = "Salvar Alterações"
		name, quantity, price = p.Name, p.Quantity, p.Price
	}

	return layout(title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="form-card">
<form action="%s" method="post">
<div class="form-group">
<label for="name">Nome do Produto:</label>
<input type="text" id="name" name="name" value="%s" required>
</div>
<div class="form-group">
<label for="quantity">Quantidade:</label>
<input type="number" id="quantity" name="quantity" min="0" value="%d" required>
</div>
<div class="form-group">
<label for="price">Preço (R$):</label>
<input type="number" id="price" name="price" min="0" step="0.01" value="%.2f" required>
</div>
<button type="submit">%s</button>
</form>
</div>
`,
			templ.EscapeString(action),
			templ.EscapeString(name),
			quantity,
			price,
			templ.EscapeString(submit),
		)
		return err
	}))
}

// ErrorPage is the generic error page for non-API requests.
func ErrorPage(status int, message string) templ.Component {
	return layout("Erro", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<p><strong>%d</strong>: %s</p>\n<p><a href=\"/\">Voltar ao Estoque</a></p>\n",
			status, templ.EscapeString(message))
		return err
	}))
}

func writeSearchBox(w io.Writer, query string) error {
	_, err := fmt.Fprintf(w, `<div class="search">
<form action="/search" method="get">
<input type="text" name="q" placeholder="Buscar produto..." value="%s">
<button type="submit">Buscar</button>
</form>
</div>
`, templ.EscapeString(query))
	return err
}

// writeProductsTable renders the full listing with per-row movement and
// edit/delete actions.
func writeProductsTable(w io.Writer, products []inventory.Product) error {
	if _, err := io.WriteString(w, `<table id="productsTable">
<thead><tr><th>ID</th><th>Produto</th><th>Quantidade</th><th>Preço (R$)</th><th>Valor Total (R$)</th><th>Ações</th></tr></thead>
<tbody>
`); err != nil {
		return err
	}
	for _, p := range products {
		if _, err := fmt.Fprintf(w, `<tr>
<td>%d</td><td>%s</td><td>%d</td><td>%.2f</td><td>%.2f</td>
<td><div class="actions">
<form class="transaction-form" action="/update/%d" method="post">
<input type="number" name="quantity" min="1" value="1" required>
<button type="submit" name="type" value="add">Entrada</button>
<button type="submit" name="type" value="remove" class="remove">Saída</button>
</form>
<div class="edit-delete">
<a href="/edit_product/%d">Editar</a>
<form action="/delete_product/%d" method="post" onsubmit="return confirm('Tem certeza que deseja excluir este produto?');">
<button type="submit">Excluir</button>
</form>
</div>
</div></td>
</tr>
`,
			p.ID, templ.EscapeString(p.Name), p.Quantity, p.Price, p.TotalValue(),
			p.ID, p.ID, p.ID,
		); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</tbody>\n</table>\n")
	return err
}

// writeSimpleProductsTable renders a read-only product table for the
// dashboard sections.
func writeSimpleProductsTable(w io.Writer, products []inventory.Product) error {
	if _, err := io.WriteString(w, `<table>
<thead><tr><th>Produto</th><th>Quantidade</th><th>Preço (R$)</th></tr></thead>
<tbody>
`); err != nil {
		return err
	}
	for _, p := range products {
		if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%d</td><td>%.2f</td></tr>`+"\n",
			templ.EscapeString(p.Name), p.Quantity, p.Price,
		); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</tbody>\n</table>\n")
	return err
}
