package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/typetycoon/internal/shop"
)

func newShopTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Upgrade", Width: 20},
			{Title: "Cost", Width: 7},
			{Title: "Status", Width: 14},
			{Title: "Effect", Width: 40},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Selected = styles.Selected.Foreground(accentColor).Bold(true)
	t.SetStyles(styles)
	return t
}

func (m *Model) openShop() {
	m.shopOpen = true
	m.shopNote = ""
	m.refreshShop()
}

func (m *Model) refreshShop() {
	m.shopItems = m.shop.Items(m.sess.Score())
	rows := make([]table.Row, 0, len(m.shopItems))
	for _, item := range m.shopItems {
		rows = append(rows, table.Row{
			item.Upgrade.Name,
			fmt.Sprintf("%d", item.Upgrade.Cost),
			item.Status.String(),
			itemDetail(item),
		})
	}
	m.shopTable.SetRows(rows)
}

func itemDetail(item shop.Item) string {
	if item.Status == shop.StatusLocked && len(item.Prerequisites) > 0 {
		return "requires " + strings.Join(item.Prerequisites, ", ")
	}
	return item.Upgrade.Description
}

func (m *Model) handleShopKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyTab:
		m.shopOpen = false
		return nil
	case tea.KeyEnter:
		m.buySelected()
		return nil
	}
	var cmd tea.Cmd
	m.shopTable, cmd = m.shopTable.Update(msg)
	return cmd
}

func (m *Model) buySelected() {
	idx := m.shopTable.Cursor()
	if idx < 0 || idx >= len(m.shopItems) {
		return
	}
	id := m.shopItems[idx].Upgrade.ID
	elapsed := m.now().Sub(m.sess.Snapshot().StartedAt)
	u, err := m.shop.Buy(m.sess, id, elapsed)
	switch {
	case err == nil:
		m.shopNote = "Bought " + u.Name
		log.Debug().Int("upgrade", u.ID).Int("cost", u.Cost).Msg("upgrade purchased")
	case errors.Is(err, shop.ErrInsufficientScore):
		m.shopNote = "Not enough points"
	case errors.Is(err, shop.ErrLocked):
		m.shopNote = "Locked: " + strings.Join(m.shopItems[idx].Prerequisites, ", ")
	case errors.Is(err, shop.ErrAlreadyOwned):
		m.shopNote = "Already owned"
	default:
		m.shopNote = err.Error()
	}
	m.refreshShop()
}
