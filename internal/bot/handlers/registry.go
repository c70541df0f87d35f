package handlers

import (
	tgbot "github.com/go-telegram/bot"
)

// RegisteredHandler represents a handler with its registration parameters.
// It encapsulates all information needed to register a command or callback.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
}

// RegisterAllCommands initializes and returns a map of all available bot
// commands plus the callback-query handlers backing the /start inline
// keyboard. Callback data values resolve to their handlers here, once, at
// registration time.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	handlers["/start"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "start",
		Handler:     NewStartHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
	}
	handlers["/help"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "help",
		Handler:     NewHelpHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
	}
	handlers["/set_moderator"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "set_moderator",
		Handler:     NewSetModeratorHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
	}
	handlers["/get_all_moderators"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "get_all_moderators",
		Handler:     NewModeratorsListHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
	}
	handlers["/ignore"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "ignore",
		Handler:     NewIgnoreHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
	}
	handlers["/get_bot_groups"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "get_bot_groups",
		Handler:     NewGroupsHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
	}
	handlers["/leave_group"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "leave_group",
		Handler:     NewLeaveGroupHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
	}

	// Inline keyboard buttons from /start.
	handlers["cb:help"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     callbackHelp,
		Handler:     NewHelpHandler(deps),
		MatchType:   tgbot.MatchTypeExact,
	}
	handlers["cb:set_moderator"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     callbackSetModerator,
		Handler:     NewSetModeratorHandler(deps),
		MatchType:   tgbot.MatchTypeExact,
	}
	handlers["cb:get_all_moderators"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     callbackModeratorsList,
		Handler:     NewModeratorsListHandler(deps),
		MatchType:   tgbot.MatchTypeExact,
	}
	handlers["cb:get_bot_groups"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     callbackBotGroups,
		Handler:     NewGroupsHandler(deps),
		MatchType:   tgbot.MatchTypeExact,
	}

	return handlers
}
