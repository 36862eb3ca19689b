package shifter

// materialize builds the instance of the context, unless it already holds one.
func materialize(ctx *ResolutionContext) error {
	if _, ok := ctx.Instance(); ok {
		return nil
	}

	options := ctx.container.options
	constructor, err := selectConstructor(options.inspector, ctx.targetType, options.ResolvePrivateMembers)
	if err != nil {
		return err
	}

	args, err := ctx.resolveArguments(constructor.Params(), constructor.String())
	if err != nil {
		return err
	}
	return injectConstructor(ctx, constructor, args)
}
