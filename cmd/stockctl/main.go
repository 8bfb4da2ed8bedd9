// stockctl 是 inventory-hub 的命令列用戶端
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"inventory-hub/internal/client"
	"inventory-hub/internal/config"
	"inventory-hub/internal/model"

	"github.com/spf13/cobra"
)

type globalFlags struct {
	server string
	token  string
}

func (g *globalFlags) newClient() *client.Client {
	c := client.New(g.server)
	c.SetToken(g.token)
	return c
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var g globalFlags
	root := &cobra.Command{
		Use:           "stockctl",
		Short:         "Manage inventory-hub products and users",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(out)
	pf := root.PersistentFlags()
	pf.StringVar(&g.server, "server", config.EnvDefault("STOCKCTL_SERVER", "http://localhost:8080"), "API base URL (env STOCKCTL_SERVER)")
	pf.StringVar(&g.token, "token", os.Getenv("STOCKCTL_TOKEN"), "session token (env STOCKCTL_TOKEN)")

	root.AddCommand(
		loginCmd(&g),
		logoutCmd(&g),
		signupCmd(&g),
		productsCmd(&g),
		usersCmd(&g),
	)
	return root
}

func loginCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Log in and print the session token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := g.newClient().Login(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (id %d), expires %s\n", resp.User.Username, resp.User.ID, resp.ExpiresAt.Format("2006-01-02 15:04:05Z07:00"))
			fmt.Fprintf(cmd.OutOrStdout(), "export STOCKCTL_TOKEN=%s\n", resp.SessionToken)
			return nil
		},
	}
}

func logoutCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the current session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if g.token == "" {
				return fmt.Errorf("no session token: pass --token or set STOCKCTL_TOKEN")
			}
			if err := g.newClient().Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logout successful")
			return nil
		},
	}
}

func signupCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "signup <username> <password>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := g.newClient().Signup(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sign-up successful")
			return nil
		},
	}
}

func productsCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{Use: "products", Short: "List and modify products"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, err := g.newClient().ListProducts(cmd.Context())
			if err != nil {
				return err
			}
			return printProducts(cmd.OutOrStdout(), products)
		},
	}

	var p model.Product
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mutateProducts(cmd, g, func(ctx context.Context, s *client.State) error {
				return s.AddProduct(ctx, p)
			})
		},
	}
	f := add.Flags()
	f.StringVar(&p.Name, "name", "", "product name")
	f.StringVar(&p.Category, "category", "", "product category")
	f.Float64Var(&p.Price, "price", 0, "unit price")
	f.IntVar(&p.Quantity, "quantity", 0, "initial quantity")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("category")
	_ = add.MarkFlagRequired("price")
	_ = add.MarkFlagRequired("quantity")

	adjust := &cobra.Command{
		Use:   "adjust <name> <add|deduct> <amount>",
		Short: "Add to or deduct from a product's quantity",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			change := model.ChangeType(args[1])
			if !change.Valid() {
				return fmt.Errorf("change type must be add or deduct, got %q", args[1])
			}
			amount, err := strconv.Atoi(args[2])
			if err != nil || amount <= 0 {
				return fmt.Errorf("amount must be a positive integer, got %q", args[2])
			}
			return mutateProducts(cmd, g, func(ctx context.Context, s *client.State) error {
				return s.AdjustQuantity(ctx, args[0], change, amount)
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a product by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateProducts(cmd, g, func(ctx context.Context, s *client.State) error {
				return s.DeleteProduct(ctx, args[0])
			})
		},
	}

	cmd.AddCommand(list, add, adjust, del)
	return cmd
}

func usersCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "List and modify users"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := g.newClient().ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			return printUsers(cmd.OutOrStdout(), users)
		},
	}

	add := &cobra.Command{
		Use:   "add <username> <password>",
		Short: "Add a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateUsers(cmd, g, func(ctx context.Context, s *client.State) error {
				return s.AddUser(ctx, args[0], args[1])
			})
		},
	}

	update := &cobra.Command{
		Use:   "update <id> <username> <password>",
		Short: "Replace a user's username and password",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			return mutateUsers(cmd, g, func(ctx context.Context, s *client.State) error {
				return s.UpdateUser(ctx, id, args[1], args[2])
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			return mutateUsers(cmd, g, func(ctx context.Context, s *client.State) error {
				return s.DeleteUser(ctx, id)
			})
		},
	}

	cmd.AddCommand(list, add, update, del)
	return cmd
}

// mutateProducts 執行變更後印出重新抓取的商品列表
func mutateProducts(cmd *cobra.Command, g *globalFlags, fn func(context.Context, *client.State) error) error {
	s := client.NewState(g.newClient())
	if err := fn(cmd.Context(), s); err != nil {
		return err
	}
	return printProducts(cmd.OutOrStdout(), s.Products())
}

func mutateUsers(cmd *cobra.Command, g *globalFlags, fn func(context.Context, *client.State) error) error {
	s := client.NewState(g.newClient())
	if err := fn(cmd.Context(), s); err != nil {
		return err
	}
	return printUsers(cmd.OutOrStdout(), s.Users())
}

func printProducts(w io.Writer, products []model.Product) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tQUANTITY")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%d\n", p.ID, p.Name, p.Category, p.Price, p.Quantity)
	}
	return tw.Flush()
}

func printUsers(w io.Writer, users []model.UserSummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\n", u.ID, u.Username)
	}
	return tw.Flush()
}
