package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/userdesk/internal/client/directory"
	"github.com/dmitrijs2005/userdesk/internal/models"
)

// List prints the collection through the current search and sort settings.
func (a *App) List(ctx context.Context) error {
	all := a.holder.Users()
	shown := a.sorter.Apply(all, a.view)

	fmt.Fprintln(a.out, renderTable(shown))

	key := a.view.Key
	if key == "" {
		key = directory.DefaultSortKey
	}
	footer := fmt.Sprintf("%d of %d users, sorted by %s", len(shown), len(all), key)
	if a.view.Query != "" {
		footer += fmt.Sprintf(", matching %q", a.view.Query)
	}
	fmt.Fprintln(a.out, footer)
	return nil
}

// Search sets the filter query (empty clears it) and lists.
func (a *App) Search(ctx context.Context, query string) error {
	a.view.Query = query
	return a.List(ctx)
}

// Sort sets the sort column and lists.
func (a *App) Sort(ctx context.Context, key string) error {
	k, err := directory.ParseSortKey(key)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	a.view.Key = k
	return a.List(ctx)
}

// Refresh re-fetches the collection from the server.
func (a *App) Refresh(ctx context.Context) error {
	users, err := a.userService.Fetch(ctx)
	if err != nil {
		return a.handleAPIError(ctx, "fetch users", err)
	}
	fmt.Fprintf(a.out, "Loaded %d users\n", len(users))
	return nil
}

// Delete asks for confirmation and removes the user with id.
func (a *App) Delete(ctx context.Context, id string) error {
	deleted, err := a.userService.Delete(ctx, id, a.confirmDelete)
	if err != nil {
		return a.handleAPIError(ctx, "delete user", err)
	}
	if deleted {
		fmt.Fprintf(a.out, "Deleted user %s\n", id)
	} else {
		fmt.Fprintln(a.out, "Cancelled")
	}
	return nil
}

func (a *App) confirmDelete(u models.User) bool {
	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %s <%s>?", u.Name, u.Email), a.out)
	return err == nil && ok
}

// Add prompts for a new user's fields and creates it.
func (a *App) Add(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	role, err := getSimpleText(a.reader, "Role (admin/user, empty for user)", a.out)
	if err != nil {
		return err
	}

	u, err := a.userService.Add(ctx, models.NewUser{Name: name, Email: email, Role: role})
	if err != nil {
		return a.handleAPIError(ctx, "add user", err)
	}
	fmt.Fprintf(a.out, "Created user %s (%s)\n", u.ID, u.Email)
	return nil
}
