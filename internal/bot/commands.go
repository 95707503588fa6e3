package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"doorman/internal/notify"
	"doorman/internal/service"
)

// Deps are the collaborators the operator commands act on
type Deps struct {
	Invites  *service.InviteService
	Knocks   *service.KnockService
	Override *service.OverrideService
	Messages *notify.Messages
	BaseURL  string
}

// Register installs the operator command table on the bot
func Register(b *Bot, deps Deps) {
	b.Handle("invite", []string{"i"}, "/invite <guest name> [# of entries]", func(ctx *Context) {
		doInvite(ctx, deps)
	})
	b.Handle("active_invites", []string{"active", "a"}, "/active_invites", func(ctx *Context) {
		doActiveInvites(ctx, deps)
	})
	b.Handle("delete", nil, "/delete <regex>...", func(ctx *Context) {
		doDelete(ctx, deps)
	})
	b.Handle("barndoor", nil, "/barndoor", func(ctx *Context) {
		doSetOverride(ctx, deps, true)
	})
	b.Handle("openup", nil, "/openup", func(ctx *Context) {
		doSetOverride(ctx, deps, false)
	})
	b.Handle("secretknock", nil, "/secretknock", func(ctx *Context) {
		doSecretKnock(ctx, deps)
	})
	b.Handle("help", nil, "/help", func(ctx *Context) {
		ctx.Reply(helpMessage(b, deps))
	})
}

func doInvite(ctx *Context, deps Deps) {
	if len(ctx.Args) == 0 || ctx.Args[0] == "" {
		ctx.Reply("Usage: /invite <guestName> [maxEntries(default=1)]")
		return
	}

	guestName := ctx.Args[0]
	maxEntries := 1
	if len(ctx.Args) > 1 {
		if n, err := strconv.Atoi(ctx.Args[1]); err == nil {
			maxEntries = n
		}
	}

	invite, err := deps.Invites.Create(guestName, maxEntries, time.Time{})
	if err != nil {
		ctx.Reply(fmt.Sprintf("Failure to create invite: %v", err))
		return
	}
	ctx.Reply(deps.Messages.InviteDetails(invite))
}

func doActiveInvites(ctx *Context, deps Deps) {
	invites, err := deps.Invites.ListActive()
	if err != nil {
		ctx.Reply(fmt.Sprintf("Error listing invites: %v", err))
		return
	}
	ctx.Reply(deps.Messages.ActiveInvites(invites))
}

func doDelete(ctx *Context, deps Deps) {
	if len(ctx.Args) == 0 {
		ctx.Reply("Usage: /delete <regex>...")
		return
	}

	deleted, err := deps.Invites.DeleteMatching(ctx.Args)
	if err != nil {
		ctx.Reply(fmt.Sprintf("Error processing delete: %v", err))
		return
	}
	if len(deleted) == 0 {
		ctx.Reply("No matching invites found")
		return
	}
	ctx.Reply(fmt.Sprintf("Deleted invites with the following GUIDS:\n%s", strings.Join(deleted, "\n")))
}

func doSetOverride(ctx *Context, deps Deps, active bool) {
	if err := deps.Override.Set(active); err != nil {
		ctx.Reply(fmt.Sprintf("Error toggling barn door: %v", err))
		return
	}
	if active {
		ctx.Reply("Barn door protocol activated.")
	} else {
		ctx.Reply("Barn door protocol deactivated. Welcome to the world.")
	}
}

func doSecretKnock(ctx *Context, deps Deps) {
	knock, err := deps.Knocks.Generate()
	if err != nil {
		ctx.Reply(fmt.Sprintf("Error generating secret knock: %v", err))
		return
	}
	ctx.Reply(fmt.Sprintf("The secret knock is %s", knock.Pattern))
}

func helpMessage(b *Bot, deps Deps) string {
	var sb strings.Builder
	sb.WriteString("== Doorman ==\n\n")
	fmt.Fprintf(&sb, "Barn Door Activated: %t\n\nCommands:\n", deps.Override.Active())
	for _, cmd := range b.Commands() {
		fmt.Fprintf(&sb, "*  %s\n", cmd.Usage)
		if len(cmd.Aliases) > 0 {
			fmt.Fprintf(&sb, "     alias: /%s\n", strings.Join(cmd.Aliases, " /"))
		}
	}
	fmt.Fprintf(&sb, "\nEndpoints:\n*  %s/knock\n*  %s/welcome/:inviteToken\n", deps.BaseURL, deps.BaseURL)
	return sb.String()
}
